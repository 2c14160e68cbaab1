// Package memory is an in-memory implementation of the fund ports, used by
// handler tests and as a self-contained demo backend.
package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"
)

// Store keeps all three collections behind one mutex.
type Store struct {
	mu sync.Mutex

	users         map[int64]core.User
	contributions map[int64]core.Contribution
	expenses      map[int64]core.Expense

	nextUserID         int64
	nextContributionID int64
	nextExpenseID      int64
}

var _ fund.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		users:         make(map[int64]core.User),
		contributions: make(map[int64]core.Contribution),
		expenses:      make(map[int64]core.Expense),
	}
}

// Seed loads initial records, assigning ids where missing.
func (s *Store) Seed(users []core.User, contributions []core.Contribution, expenses []core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if u.ID == 0 {
			s.nextUserID++
			u.ID = s.nextUserID
		} else if u.ID > s.nextUserID {
			s.nextUserID = u.ID
		}
		if u.Status == "" {
			u.Status = core.StatusActive
		}
		s.users[u.ID] = u
	}
	for _, c := range contributions {
		if c.ID == 0 {
			s.nextContributionID++
			c.ID = s.nextContributionID
		} else if c.ID > s.nextContributionID {
			s.nextContributionID = c.ID
		}
		s.contributions[c.ID] = c
	}
	for _, e := range expenses {
		if e.ID == 0 {
			s.nextExpenseID++
			e.ID = s.nextExpenseID
		} else if e.ID > s.nextExpenseID {
			s.nextExpenseID = e.ID
		}
		s.expenses[e.ID] = e
	}
}

// Login implements fund.Authenticator.
func (s *Store) Login(ctx context.Context, phoneNumber string) (core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Phone == phoneNumber {
			return core.Session{UserID: u.ID, Name: u.Name, Role: u.Role}, nil
		}
	}
	return core.Session{}, fund.ErrUnknownPhone
}

// ListUsers implements fund.UserStore.
func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateUser implements fund.UserStore.
func (s *Store) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	u.ID = s.nextUserID
	if u.Role == "" {
		u.Role = core.RoleMember
	}
	if u.Status == "" {
		u.Status = core.StatusActive
	}
	s.users[u.ID] = u
	return u, nil
}

// UpdateUser implements fund.UserStore.
func (s *Store) UpdateUser(ctx context.Context, id int64, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return core.User{}, fmt.Errorf("user %d: %w", id, fund.ErrNotFound)
	}
	u.ID = existing.ID
	if u.Role == "" {
		u.Role = existing.Role
	}
	if u.Status == "" {
		u.Status = existing.Status
	}
	s.users[id] = u
	return u, nil
}

// DeleteUser implements fund.UserStore.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, fund.ErrNotFound)
	}
	delete(s.users, id)
	return nil
}

// ListContributions implements fund.ContributionStore.
func (s *Store) ListContributions(ctx context.Context, f fund.ContributionFilter) ([]core.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filterUserID int64
	if f.UserID != "" {
		id, err := strconv.ParseInt(f.UserID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse user_id filter %q: %w", f.UserID, err)
		}
		filterUserID = id
	}

	out := make([]core.Contribution, 0, len(s.contributions))
	for _, c := range s.contributions {
		if filterUserID != 0 && c.UserID != filterUserID {
			continue
		}
		if f.Month != "" && c.Month != f.Month {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateContribution implements fund.ContributionStore.
func (s *Store) CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextContributionID++
	c.ID = s.nextContributionID
	s.contributions[c.ID] = c
	return c, nil
}

// UpdateContribution implements fund.ContributionStore.
func (s *Store) UpdateContribution(ctx context.Context, id int64, c core.Contribution) (core.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contributions[id]; !ok {
		return core.Contribution{}, fmt.Errorf("contribution %d: %w", id, fund.ErrNotFound)
	}
	c.ID = id
	s.contributions[id] = c
	return c, nil
}

// DeleteContribution implements fund.ContributionStore.
func (s *Store) DeleteContribution(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contributions[id]; !ok {
		return fmt.Errorf("contribution %d: %w", id, fund.ErrNotFound)
	}
	delete(s.contributions, id)
	return nil
}

// ListExpenses implements fund.ExpenseStore.
func (s *Store) ListExpenses(ctx context.Context, f fund.ExpenseFilter) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if f.Month != "" && e.Month != f.Month {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateExpense implements fund.ExpenseStore.
func (s *Store) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextExpenseID++
	e.ID = s.nextExpenseID
	s.expenses[e.ID] = e
	return e, nil
}

// UpdateExpense implements fund.ExpenseStore.
func (s *Store) UpdateExpense(ctx context.Context, id int64, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return core.Expense{}, fmt.Errorf("expense %d: %w", id, fund.ErrNotFound)
	}
	e.ID = id
	s.expenses[id] = e
	return e, nil
}

// DeleteExpense implements fund.ExpenseStore.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return fmt.Errorf("expense %d: %w", id, fund.ErrNotFound)
	}
	delete(s.expenses, id)
	return nil
}

// ExportCSV implements fund.Exporter.
func (s *Store) ExportCSV(ctx context.Context, resource string, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	switch resource {
	case fund.ResourceUsers:
		users, _ := s.ListUsers(ctx)
		if err := cw.Write([]string{"user_id", "name", "phone_number", "email", "role", "status"}); err != nil {
			return err
		}
		for _, u := range users {
			if err := cw.Write([]string{
				strconv.FormatInt(u.ID, 10), u.Name, u.Phone, u.Email, string(u.Role), string(u.Status),
			}); err != nil {
				return err
			}
		}
	case fund.ResourceContributions:
		contributions, _ := s.ListContributions(ctx, fund.ContributionFilter{})
		if err := cw.Write([]string{"contribution_id", "user_id", "amount", "date", "month"}); err != nil {
			return err
		}
		for _, c := range contributions {
			if err := cw.Write([]string{
				strconv.FormatInt(c.ID, 10), strconv.FormatInt(c.UserID, 10), c.Amount.String(), c.Date, c.Month,
			}); err != nil {
				return err
			}
		}
	case fund.ResourceExpenses:
		expenses, _ := s.ListExpenses(ctx, fund.ExpenseFilter{})
		if err := cw.Write([]string{"expense_id", "description", "amount", "date", "month", "created_by"}); err != nil {
			return err
		}
		for _, e := range expenses {
			if err := cw.Write([]string{
				strconv.FormatInt(e.ID, 10), e.Description, e.Amount.String(), e.Date, e.Month, strconv.FormatInt(e.CreatedBy, 10),
			}); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("export resource %q: %w", resource, fund.ErrNotFound)
	}

	cw.Flush()
	return cw.Error()
}
