package http

import (
	"net/http"
	"strconv"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"
	"sportsfund/internal/log"

	"golang.org/x/sync/errgroup"
)

type contributionRow struct {
	ID          int64
	UserID      int64
	UserName    string
	Amount      string
	AmountLabel string
	Date        string
	Month       string
}

type contributionsPage struct {
	Session       sessionView
	Error         string
	Form          map[string]string
	Users         []core.User
	Filter        fund.ContributionFilter
	Contributions []contributionRow
	Editing       *contributionRow
}

var contributionFormKeys = []string{"user_id", "amount", "date", "month"}

func contributionFilterFrom(r *http.Request) fund.ContributionFilter {
	q := r.URL.Query()
	return fund.ContributionFilter{
		UserID: q.Get("user_id"),
		Month:  q.Get("month"),
	}
}

func (s *Server) handleContributionsPage(w http.ResponseWriter, r *http.Request) {
	s.renderContributions(w, r, "", map[string]string{})
}

func (s *Server) renderContributions(w http.ResponseWriter, r *http.Request, banner string, form map[string]string) {
	sess := sessionFrom(r.Context())
	filter := contributionFilterFrom(r)
	page := contributionsPage{Session: viewOf(sess), Error: banner, Form: form, Filter: filter}

	var (
		users         []core.User
		contributions []core.Contribution
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		users, err = s.store.ListUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		contributions, err = s.store.ListContributions(ctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load contributions page",
			log.FieldOperation, log.OpList, log.FieldError, err)
		if page.Error == "" {
			page.Error = "Could not load contributions. Please try again."
		}
		s.render(w, r, "contributions.html", page)
		return
	}

	page.Users = users
	nameOf := userNameByID(users)
	for _, c := range contributions {
		page.Contributions = append(page.Contributions, contributionRow{
			ID:          c.ID,
			UserID:      c.UserID,
			UserName:    nameOf(c.UserID),
			Amount:      c.Amount.String(),
			AmountLabel: formatAmount(c.Amount),
			Date:        c.Date,
			Month:       c.Month,
		})
	}

	if editID := r.URL.Query().Get("edit"); editID != "" && sess.IsAdmin() {
		if id, err := strconv.ParseInt(editID, 10, 64); err == nil {
			for i := range page.Contributions {
				if page.Contributions[i].ID == id {
					page.Editing = &page.Contributions[i]
					break
				}
			}
		}
	}

	s.render(w, r, "contributions.html", page)
}

// contributionFromForm builds a contribution from posted fields. The user id
// arrives as a string and is coerced to its numeric form.
func contributionFromForm(r *http.Request) (core.Contribution, error) {
	userID, err := strconv.ParseInt(formValue(r, "user_id"), 10, 64)
	if err != nil {
		return core.Contribution{}, core.ErrMissingUser
	}

	amount, err := core.ParseAmount(formValue(r, "amount"))
	if err != nil {
		return core.Contribution{}, err
	}

	return core.Contribution{
		UserID: userID,
		Amount: amount,
		Date:   formValue(r, "date"),
		Month:  formValue(r, "month"),
	}, nil
}

func (s *Server) handleContributionCreate(w http.ResponseWriter, r *http.Request) {
	c, err := contributionFromForm(r)
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		s.renderContributions(w, r, err.Error(), formSnapshot(r, contributionFormKeys...))
		return
	}

	if _, err := s.store.CreateContribution(r.Context(), c); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to create contribution",
			log.FieldOperation, log.OpCreate, log.FieldError, err)
		s.renderContributions(w, r, backendErrorMessage(err, "Could not save the contribution. Please try again."),
			formSnapshot(r, contributionFormKeys...))
		return
	}

	http.Redirect(w, r, "/contributions", http.StatusSeeOther)
}

func (s *Server) handleContributionUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := contributionFromForm(r)
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		s.renderContributions(w, r, err.Error(), map[string]string{})
		return
	}

	if _, err := s.store.UpdateContribution(r.Context(), id, c); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to update contribution",
			log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		s.renderContributions(w, r, backendErrorMessage(err, "Could not update the contribution. Please try again."),
			map[string]string{})
		return
	}

	http.Redirect(w, r, "/contributions", http.StatusSeeOther)
}

func (s *Server) handleContributionDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteContribution(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete contribution",
			log.FieldOperation, log.OpDelete, log.FieldEntityID, id, log.FieldError, err)
		s.renderContributions(w, r, backendErrorMessage(err, "Could not delete the contribution. Please try again."),
			map[string]string{})
		return
	}

	http.Redirect(w, r, "/contributions", http.StatusSeeOther)
}
