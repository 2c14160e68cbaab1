package http

import (
	"net/http"
	"strconv"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"
	"sportsfund/internal/log"

	"golang.org/x/sync/errgroup"
)

type expenseRow struct {
	ID            int64
	Description   string
	Amount        string
	AmountLabel   string
	Date          string
	Month         string
	CreatedByName string
}

type expensesPage struct {
	Session  sessionView
	Error    string
	Form     map[string]string
	Filter   fund.ExpenseFilter
	Expenses []expenseRow
	Editing  *expenseRow
}

var expenseFormKeys = []string{"description", "amount", "date", "month"}

func (s *Server) handleExpensesPage(w http.ResponseWriter, r *http.Request) {
	s.renderExpenses(w, r, "", map[string]string{})
}

func (s *Server) renderExpenses(w http.ResponseWriter, r *http.Request, banner string, form map[string]string) {
	sess := sessionFrom(r.Context())
	filter := fund.ExpenseFilter{Month: r.URL.Query().Get("month")}
	page := expensesPage{Session: viewOf(sess), Error: banner, Form: form, Filter: filter}

	var (
		users    []core.User
		expenses []core.Expense
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		users, err = s.store.ListUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(ctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load expenses page",
			log.FieldOperation, log.OpList, log.FieldError, err)
		if page.Error == "" {
			page.Error = "Could not load expenses. Please try again."
		}
		s.render(w, r, "expenses.html", page)
		return
	}

	nameOf := userNameByID(users)
	for _, e := range expenses {
		page.Expenses = append(page.Expenses, expenseRow{
			ID:            e.ID,
			Description:   e.Description,
			Amount:        e.Amount.String(),
			AmountLabel:   formatAmount(e.Amount),
			Date:          e.Date,
			Month:         e.Month,
			CreatedByName: nameOf(e.CreatedBy),
		})
	}

	if editID := r.URL.Query().Get("edit"); editID != "" && sess.IsAdmin() {
		if id, err := strconv.ParseInt(editID, 10, 64); err == nil {
			for i := range page.Expenses {
				if page.Expenses[i].ID == id {
					page.Editing = &page.Expenses[i]
					break
				}
			}
		}
	}

	s.render(w, r, "expenses.html", page)
}

func expenseFromForm(r *http.Request, createdBy int64) (core.Expense, error) {
	amount, err := core.ParseAmount(formValue(r, "amount"))
	if err != nil {
		return core.Expense{}, err
	}

	return core.Expense{
		Description: formValue(r, "description"),
		Amount:      amount,
		Date:        formValue(r, "date"),
		Month:       formValue(r, "month"),
		CreatedBy:   createdBy,
	}, nil
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	e, err := expenseFromForm(r, sess.UserID)
	if err == nil {
		err = e.Validate()
	}
	if err != nil {
		s.renderExpenses(w, r, err.Error(), formSnapshot(r, expenseFormKeys...))
		return
	}

	if _, err := s.store.CreateExpense(r.Context(), e); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to create expense",
			log.FieldOperation, log.OpCreate, log.FieldError, err)
		s.renderExpenses(w, r, backendErrorMessage(err, "Could not save the expense. Please try again."),
			formSnapshot(r, expenseFormKeys...))
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleExpenseUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r.Context())
	e, err := expenseFromForm(r, sess.UserID)
	if err == nil {
		err = e.Validate()
	}
	if err != nil {
		s.renderExpenses(w, r, err.Error(), map[string]string{})
		return
	}

	if _, err := s.store.UpdateExpense(r.Context(), id, e); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to update expense",
			log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		s.renderExpenses(w, r, backendErrorMessage(err, "Could not update the expense. Please try again."),
			map[string]string{})
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteExpense(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete expense",
			log.FieldOperation, log.OpDelete, log.FieldEntityID, id, log.FieldError, err)
		s.renderExpenses(w, r, backendErrorMessage(err, "Could not delete the expense. Please try again."),
			map[string]string{})
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}
