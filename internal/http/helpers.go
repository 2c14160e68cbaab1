package http

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"
	"sportsfund/internal/fund/remote"
	"sportsfund/internal/log"
	appweb "sportsfund/web"
)

// render executes one page template inside the base layout. Templates are
// parsed per request; the embedded FS makes this cheap and keeps page data
// from leaking between views.
func (s *Server) render(w http.ResponseWriter, r *http.Request, view string, data any) {
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/base.html", "templates/"+view)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Template parse failed",
			log.FieldError, err, "template", view)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err, "template", view)
	}
}

// formatAmount renders a money value the way the screens show it.
func formatAmount(a core.Amount) string {
	return "₹" + strconv.FormatFloat(a.Float64(), 'f', 2, 64)
}

// backendErrorMessage turns a backend failure into user-facing text.
// Backend-provided messages pass through; everything else gets fallback.
func backendErrorMessage(err error, fallback string) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, fund.ErrUnknownPhone) {
		return "Invalid phone number"
	}
	if errors.Is(err, fund.ErrNotFound) {
		return "The record no longer exists. The list below is current."
	}
	return fallback
}

// parseID reads the {id} path segment.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// formValue trims a single form field.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formSnapshot captures submitted fields so a failed form can be re-shown
// with the member's input intact.
func formSnapshot(r *http.Request, keys ...string) map[string]string {
	snap := make(map[string]string, len(keys))
	for _, k := range keys {
		snap[k] = formValue(r, k)
	}
	return snap
}

// userNameByID maps user ids to display names, falling back to the raw id
// when the roster no longer has it.
func userNameByID(users []core.User) func(int64) string {
	byID := make(map[int64]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Name
	}
	return func(id int64) string {
		if name, ok := byID[id]; ok {
			return name
		}
		return strconv.FormatInt(id, 10)
	}
}

// clientIP extracts the caller address, honouring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
