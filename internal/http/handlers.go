package http

import (
	"net/http"

	"sportsfund/internal/log"
)

const loginFallbackError = "Login failed. Please try again."

type loginPage struct {
	Session sessionView
	Error   string
	Form    map[string]string
}

// sessionView is what the layout needs from a session. The zero value
// renders the logged-out chrome.
type sessionView struct {
	Name    string
	IsAdmin bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.Get(r); ok {
		http.Redirect(w, r, "/contributions", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.Get(r); ok {
		http.Redirect(w, r, "/contributions", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", loginPage{Form: map[string]string{}})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, "login.html", loginPage{
			Error: loginFallbackError,
			Form:  map[string]string{},
		})
		return
	}

	phone := formValue(r, "phone_number")
	if phone == "" {
		s.render(w, r, "login.html", loginPage{
			Error: "Phone number is required",
			Form:  map[string]string{},
		})
		return
	}

	sess, err := s.store.Login(r.Context(), phone)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Login failed",
			log.FieldOperation, log.OpLogin,
			log.FieldError, err)
		s.render(w, r, "login.html", loginPage{
			Error: backendErrorMessage(err, loginFallbackError),
			Form:  formSnapshot(r, "phone_number"),
		})
		return
	}

	if err := s.sessions.Set(w, sess); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to write session cookie", log.FieldError, err)
		s.render(w, r, "login.html", loginPage{
			Error: loginFallbackError,
			Form:  formSnapshot(r, "phone_number"),
		})
		return
	}

	s.logger.InfoContext(r.Context(), "Login succeeded",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, sess.UserID)
	http.Redirect(w, r, "/contributions", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
