package core

import (
	"errors"
	"strings"
)

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"

	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type (
	// Role gates administrative affordances in the UI.
	Role string

	// Status is display-only from the front-end's perspective.
	Status string

	// User is a fund member as exchanged with the backend.
	User struct {
		ID     int64  `json:"user_id"`
		Name   string `json:"name"`
		Phone  string `json:"phone_number"`
		Email  string `json:"email,omitempty"`
		Role   Role   `json:"role"`
		Status Status `json:"status,omitempty"`
	}

	// Contribution records money collected from a member.
	// Month is a free-text label (e.g. "May 2025"), not derived from Date.
	Contribution struct {
		ID     int64  `json:"contribution_id"`
		UserID int64  `json:"user_id"`
		Amount Amount `json:"amount"`
		Date   string `json:"date"`
		Month  string `json:"month"`
	}

	// Expense records money spent from the fund.
	Expense struct {
		ID          int64  `json:"expense_id"`
		Description string `json:"description"`
		Amount      Amount `json:"amount"`
		Date        string `json:"date"`
		Month       string `json:"month"`
		CreatedBy   int64  `json:"created_by"`
	}

	// Session is the client-held identity derived from a login response.
	// It is the sole source of authorization decisions on this side.
	Session struct {
		UserID int64  `json:"user_id,omitempty"`
		Name   string `json:"name"`
		Role   Role   `json:"role"`
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyPhone       = errors.New("empty phone number")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyDate        = errors.New("empty date")
	ErrEmptyMonth       = errors.New("empty month")
	ErrMissingUser      = errors.New("missing user reference")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidRole      = errors.New("invalid role")
)

// IsValid reports whether r is one of the two known roles.
func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanManage reports whether the session may create, edit, delete or export
// the given resource. Every admin-gated control in the UI goes through this
// single check.
func (s Session) CanManage(resource string) bool {
	return s.IsAdmin()
}

// Validate checks the mandatory fields for creating or updating a user.
// Only presence is checked; format validation is left to the backend.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(u.Phone) == "" {
		return ErrEmptyPhone
	}
	if u.Role != "" && !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// Validate checks the mandatory fields of a contribution.
func (c Contribution) Validate() error {
	if c.UserID <= 0 {
		return ErrMissingUser
	}
	if strings.TrimSpace(c.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(c.Month) == "" {
		return ErrEmptyMonth
	}
	return nil
}

// Validate checks the mandatory fields of an expense.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(e.Month) == "" {
		return ErrEmptyMonth
	}
	if e.CreatedBy <= 0 {
		return ErrMissingUser
	}
	return nil
}
