package http

import (
	"net/http"

	"sportsfund/internal/fund"
	"sportsfund/internal/log"
)

// handleExport streams a resource as a CSV download. Exports carry the whole
// table, so they stay admin-only like the mutations.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resource := r.PathValue("resource")
	if !fund.ValidResource(resource) {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r.Context())
	if !sess.CanManage(resource) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+resource+`.csv"`)

	if err := s.store.ExportCSV(r.Context(), resource, w); err != nil {
		// Headers may already be out; log and stop rather than write an
		// HTML error into a CSV body.
		s.logger.ErrorContext(r.Context(), "CSV export failed",
			log.FieldOperation, log.OpExport,
			log.FieldResource, resource,
			log.FieldError, err)
		return
	}

	s.logger.InfoContext(r.Context(), "CSV export completed",
		log.FieldOperation, log.OpExport,
		log.FieldResource, resource)
}
