package http

import (
	"net/http"
	"strconv"

	"sportsfund/internal/core"
	"sportsfund/internal/log"
)

type userRow struct {
	Index int
	core.User
}

type usersPage struct {
	Session sessionView
	Error   string
	Form    map[string]string
	Users   []userRow
	Editing *core.User
}

func viewOf(sess core.Session) sessionView {
	return sessionView{Name: sess.Name, IsAdmin: sess.IsAdmin()}
}

var userFormKeys = []string{"name", "phone_number", "email", "role", "status"}

func (s *Server) handleUsersPage(w http.ResponseWriter, r *http.Request) {
	s.renderUsers(w, r, "", map[string]string{})
}

// renderUsers fetches the roster fresh and renders the page, optionally with
// an error banner and the failed form's values.
func (s *Server) renderUsers(w http.ResponseWriter, r *http.Request, banner string, form map[string]string) {
	sess := sessionFrom(r.Context())
	page := usersPage{Session: viewOf(sess), Error: banner, Form: form}

	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list users",
			log.FieldOperation, log.OpList, log.FieldError, err)
		if page.Error == "" {
			page.Error = "Could not load users. Please try again."
		}
		s.render(w, r, "users.html", page)
		return
	}

	for i, u := range users {
		page.Users = append(page.Users, userRow{Index: i + 1, User: u})
	}

	if editID := r.URL.Query().Get("edit"); editID != "" && sess.IsAdmin() {
		if id, err := strconv.ParseInt(editID, 10, 64); err == nil {
			for i := range users {
				if users[i].ID == id {
					page.Editing = &users[i]
					break
				}
			}
		}
	}

	s.render(w, r, "users.html", page)
}

func userFromForm(r *http.Request) core.User {
	return core.User{
		Name:   formValue(r, "name"),
		Phone:  formValue(r, "phone_number"),
		Email:  formValue(r, "email"),
		Role:   core.Role(formValue(r, "role")),
		Status: core.Status(formValue(r, "status")),
	}
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	u := userFromForm(r)
	if err := u.Validate(); err != nil {
		s.renderUsers(w, r, err.Error(), formSnapshot(r, userFormKeys...))
		return
	}

	if _, err := s.store.CreateUser(r.Context(), u); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to create user",
			log.FieldOperation, log.OpCreate, log.FieldError, err)
		s.renderUsers(w, r, backendErrorMessage(err, "Could not save the user. Please try again."),
			formSnapshot(r, userFormKeys...))
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	u := userFromForm(r)
	if err := u.Validate(); err != nil {
		s.renderUsers(w, r, err.Error(), map[string]string{})
		return
	}

	if _, err := s.store.UpdateUser(r.Context(), id, u); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to update user",
			log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		s.renderUsers(w, r, backendErrorMessage(err, "Could not update the user. Please try again."),
			map[string]string{})
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete user",
			log.FieldOperation, log.OpDelete, log.FieldEntityID, id, log.FieldError, err)
		s.renderUsers(w, r, backendErrorMessage(err, "Could not delete the user. Please try again."),
			map[string]string{})
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
