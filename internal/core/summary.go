package core

// Summary holds the fund-wide totals shown on the summary view.
type Summary struct {
	TotalCollected float64
	TotalSpent     float64
}

// Balance is what remains in the fund.
func (s Summary) Balance() float64 {
	return s.TotalCollected - s.TotalSpent
}

// Summarize sums both collections. Plain addition, so the result does not
// depend on the order the backend returns the rows in.
func Summarize(contributions []Contribution, expenses []Expense) Summary {
	var s Summary
	for _, c := range contributions {
		s.TotalCollected += c.Amount.Float64()
	}
	for _, e := range expenses {
		s.TotalSpent += e.Amount.Float64()
	}
	return s
}
