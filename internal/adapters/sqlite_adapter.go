// Package adapters composes the sqlite repository and the mutation service
// into the single store interface the HTTP handlers consume.
package adapters

import (
	"context"
	"io"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"
	"sportsfund/internal/services"
	"sportsfund/internal/storage"
)

// SQLiteAdapter routes reads straight to storage and writes through the
// mutation service so every write emits an event.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.MutationService
}

var _ fund.Store = (*SQLiteAdapter)(nil)

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.MutationService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

func (a *SQLiteAdapter) Login(ctx context.Context, phoneNumber string) (core.Session, error) {
	return a.storage.Login(ctx, phoneNumber)
}

func (a *SQLiteAdapter) ListUsers(ctx context.Context) ([]core.User, error) {
	return a.storage.ListUsers(ctx)
}

func (a *SQLiteAdapter) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	return a.service.CreateUser(ctx, u)
}

func (a *SQLiteAdapter) UpdateUser(ctx context.Context, id int64, u core.User) (core.User, error) {
	return a.service.UpdateUser(ctx, id, u)
}

func (a *SQLiteAdapter) DeleteUser(ctx context.Context, id int64) error {
	return a.service.DeleteUser(ctx, id)
}

func (a *SQLiteAdapter) ListContributions(ctx context.Context, f fund.ContributionFilter) ([]core.Contribution, error) {
	return a.storage.ListContributions(ctx, f)
}

func (a *SQLiteAdapter) CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	return a.service.CreateContribution(ctx, c)
}

func (a *SQLiteAdapter) UpdateContribution(ctx context.Context, id int64, c core.Contribution) (core.Contribution, error) {
	return a.service.UpdateContribution(ctx, id, c)
}

func (a *SQLiteAdapter) DeleteContribution(ctx context.Context, id int64) error {
	return a.service.DeleteContribution(ctx, id)
}

func (a *SQLiteAdapter) ListExpenses(ctx context.Context, f fund.ExpenseFilter) ([]core.Expense, error) {
	return a.storage.ListExpenses(ctx, f)
}

func (a *SQLiteAdapter) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	return a.service.CreateExpense(ctx, e)
}

func (a *SQLiteAdapter) UpdateExpense(ctx context.Context, id int64, e core.Expense) (core.Expense, error) {
	return a.service.UpdateExpense(ctx, id, e)
}

func (a *SQLiteAdapter) DeleteExpense(ctx context.Context, id int64) error {
	return a.service.DeleteExpense(ctx, id)
}

func (a *SQLiteAdapter) ExportCSV(ctx context.Context, resource string, w io.Writer) error {
	return a.storage.ExportCSV(ctx, resource, w)
}
