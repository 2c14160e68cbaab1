package http

import (
	"context"
	"net/http"

	"sportsfund/internal/core"
	"sportsfund/internal/log"
)

type contextKey string

const sessionKey contextKey = "session"

// guard requires a logged-in session. Anonymous requests are sent to the
// login page; the session rides the request context from here on.
func (s *Server) guard(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.Get(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next(w, r.WithContext(ctx))
	})
}

// requireManage rejects mutations from sessions that cannot manage the
// resource. The UI hides these controls for members, but hiding is not
// enforcement.
func (s *Server) requireManage(resource string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())
		if !sess.CanManage(resource) {
			s.logger.WarnContext(r.Context(), "Mutation rejected for non-admin session",
				log.FieldResource, resource,
				log.FieldUserID, sess.UserID,
				log.FieldPath, r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// sessionFrom returns the session stored by guard, or the zero session.
func sessionFrom(ctx context.Context) core.Session {
	if sess, ok := ctx.Value(sessionKey).(core.Session); ok {
		return sess
	}
	return core.Session{}
}
