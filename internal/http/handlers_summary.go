package http

import (
	"net/http"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"
	"sportsfund/internal/log"

	"golang.org/x/sync/errgroup"
)

type summaryPage struct {
	Session        sessionView
	Error          string
	Filter         fund.ExpenseFilter
	TotalCollected string
	TotalSpent     string
	Balance        string
}

func (s *Server) handleSummaryPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	month := r.URL.Query().Get("month")
	page := summaryPage{
		Session:        viewOf(sess),
		Filter:         fund.ExpenseFilter{Month: month},
		TotalCollected: formatAmount(0),
		TotalSpent:     formatAmount(0),
		Balance:        formatAmount(0),
	}

	var (
		contributions []core.Contribution
		expenses      []core.Expense
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		contributions, err = s.store.ListContributions(ctx, fund.ContributionFilter{Month: month})
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(ctx, fund.ExpenseFilter{Month: month})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load summary",
			log.FieldOperation, log.OpList, log.FieldMonth, month, log.FieldError, err)
		page.Error = "Could not load the summary. Please try again."
		s.render(w, r, "summary.html", page)
		return
	}

	summary := core.Summarize(contributions, expenses)
	page.TotalCollected = formatAmount(core.Amount(summary.TotalCollected))
	page.TotalSpent = formatAmount(core.Amount(summary.TotalSpent))
	page.Balance = formatAmount(core.Amount(summary.Balance()))

	s.render(w, r, "summary.html", page)
}
