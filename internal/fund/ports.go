// Package fund defines the ports the front-end uses to reach the fund data,
// wherever it lives. The production implementation talks to the remote REST
// backend; sqlite and memory implementations back self-contained deployments
// and tests.
package fund

import (
	"context"
	"io"

	"sportsfund/internal/core"
)

// Resource names, as they appear in routes and export endpoints.
const (
	ResourceUsers         = "users"
	ResourceContributions = "contributions"
	ResourceExpenses      = "expenses"
)

// ValidResource reports whether name is a known exportable resource.
func ValidResource(name string) bool {
	switch name {
	case ResourceUsers, ResourceContributions, ResourceExpenses:
		return true
	}
	return false
}

// ContributionFilter narrows a contribution listing. Empty fields are
// omitted from the request entirely, never sent as empty values.
type ContributionFilter struct {
	UserID string
	Month  string
}

// IsZero reports whether no filter is active.
func (f ContributionFilter) IsZero() bool {
	return f.UserID == "" && f.Month == ""
}

// ExpenseFilter narrows an expense listing by free-text month label.
type ExpenseFilter struct {
	Month string
}

// IsZero reports whether no filter is active.
func (f ExpenseFilter) IsZero() bool {
	return f.Month == ""
}

type (
	// Authenticator resolves a phone number to a session identity.
	// There is no password, lockout or retry policy: one lookup, trusted
	// as returned.
	Authenticator interface {
		Login(ctx context.Context, phoneNumber string) (core.Session, error)
	}

	// UserStore manages the member roster.
	UserStore interface {
		ListUsers(ctx context.Context) ([]core.User, error)
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		UpdateUser(ctx context.Context, id int64, u core.User) (core.User, error)
		DeleteUser(ctx context.Context, id int64) error
	}

	// ContributionStore manages collected amounts.
	ContributionStore interface {
		ListContributions(ctx context.Context, f ContributionFilter) ([]core.Contribution, error)
		CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error)
		UpdateContribution(ctx context.Context, id int64, c core.Contribution) (core.Contribution, error)
		DeleteContribution(ctx context.Context, id int64) error
	}

	// ExpenseStore manages spent amounts.
	ExpenseStore interface {
		ListExpenses(ctx context.Context, f ExpenseFilter) ([]core.Expense, error)
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
		UpdateExpense(ctx context.Context, id int64, e core.Expense) (core.Expense, error)
		DeleteExpense(ctx context.Context, id int64) error
	}

	// Exporter streams a resource as CSV. The remote implementation proxies
	// the backend's export endpoint without parsing it; local backends
	// generate the file themselves.
	Exporter interface {
		ExportCSV(ctx context.Context, resource string, w io.Writer) error
	}

	// Store is the full port set a backend must provide.
	Store interface {
		Authenticator
		UserStore
		ContributionStore
		ExpenseStore
		Exporter
	}
)
