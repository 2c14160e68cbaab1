package memory

import (
	"bytes"
	"context"
	"testing"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *Store {
	s := New()
	s.Seed(
		[]core.User{
			{Name: "Priya", Phone: "9000000001", Role: core.RoleAdmin},
			{Name: "Ravi", Phone: "9000000002", Role: core.RoleMember},
		},
		[]core.Contribution{
			{UserID: 1, Amount: 500, Date: "2026-01-05", Month: "January"},
			{UserID: 2, Amount: 350.50, Date: "2026-02-03", Month: "February"},
			{UserID: 1, Amount: 200, Date: "2026-02-10", Month: "February"},
		},
		[]core.Expense{
			{Description: "Cricket balls", Amount: 450, Date: "2026-01-20", Month: "January", CreatedBy: 1},
			{Description: "Ground rent", Amount: 1200, Date: "2026-02-01", Month: "February", CreatedBy: 1},
		},
	)
	return s
}

func TestLogin(t *testing.T) {
	s := seeded()

	sess, err := s.Login(context.Background(), "9000000002")
	require.NoError(t, err)
	assert.Equal(t, core.Session{UserID: 2, Name: "Ravi", Role: core.RoleMember}, sess)

	_, err = s.Login(context.Background(), "1234567890")
	assert.ErrorIs(t, err, fund.ErrUnknownPhone)
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := seeded()

	u, err := s.CreateUser(context.Background(), core.User{Name: "Anita", Phone: "9000000003"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, u.ID)
	assert.Equal(t, core.RoleMember, u.Role)
	assert.Equal(t, core.StatusActive, u.Status)

	c, err := s.CreateContribution(context.Background(), core.Contribution{UserID: u.ID, Amount: 100, Date: "2026-03-01", Month: "March"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, c.ID)
}

func TestUpdateAndDelete(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	updated, err := s.UpdateExpense(ctx, 1, core.Expense{Description: "Cricket kit", Amount: 600, Date: "2026-01-20", Month: "January", CreatedBy: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated.ID)
	assert.Equal(t, "Cricket kit", updated.Description)

	require.NoError(t, s.DeleteExpense(ctx, 1))
	expenses, err := s.ListExpenses(ctx, fund.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Ground rent", expenses[0].Description)

	_, err = s.UpdateExpense(ctx, 99, core.Expense{})
	assert.ErrorIs(t, err, fund.ErrNotFound)
	assert.ErrorIs(t, s.DeleteExpense(ctx, 99), fund.ErrNotFound)
}

func TestContributionFilters(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	all, err := s.ListContributions(ctx, fund.ContributionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byMonth, err := s.ListContributions(ctx, fund.ContributionFilter{Month: "February"})
	require.NoError(t, err)
	assert.Len(t, byMonth, 2)

	byUser, err := s.ListContributions(ctx, fund.ContributionFilter{UserID: "1"})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	both, err := s.ListContributions(ctx, fund.ContributionFilter{UserID: "1", Month: "February"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.EqualValues(t, 3, both[0].ID)
}

func TestExpenseMonthFilter(t *testing.T) {
	s := seeded()

	january, err := s.ListExpenses(context.Background(), fund.ExpenseFilter{Month: "January"})
	require.NoError(t, err)
	require.Len(t, january, 1)
	assert.Equal(t, "Cricket balls", january[0].Description)
}

func TestExportCSV(t *testing.T) {
	s := seeded()

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(context.Background(), fund.ResourceContributions, &buf))

	want := "contribution_id,user_id,amount,date,month\n" +
		"1,1,500,2026-01-05,January\n" +
		"2,2,350.5,2026-02-03,February\n" +
		"3,1,200,2026-02-10,February\n"
	assert.Equal(t, want, buf.String())

	assert.Error(t, s.ExportCSV(context.Background(), "budgets", &bytes.Buffer{}))
}
