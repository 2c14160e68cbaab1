package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	contributions := []Contribution{
		{ID: 1, UserID: 1, Amount: 500, Month: "May 2025"},
		{ID: 2, UserID: 2, Amount: 250.50, Month: "May 2025"},
		{ID: 3, UserID: 3, Amount: 100, Month: "June 2025"},
	}
	expenses := []Expense{
		{ID: 1, Description: "Jerseys", Amount: 300, CreatedBy: 1},
		{ID: 2, Description: "Ground booking", Amount: 150.25, CreatedBy: 1},
	}

	s := Summarize(contributions, expenses)
	assert.InDelta(t, 850.50, s.TotalCollected, 1e-9)
	assert.InDelta(t, 450.25, s.TotalSpent, 1e-9)
	assert.InDelta(t, 400.25, s.Balance(), 1e-9)
}

func TestSummarizeOrderIndependent(t *testing.T) {
	contributions := []Contribution{
		{Amount: 10.10}, {Amount: 20.20}, {Amount: 30.30},
	}
	reversed := []Contribution{
		{Amount: 30.30}, {Amount: 20.20}, {Amount: 10.10},
	}
	expenses := []Expense{{Amount: 5.5}, {Amount: 1.25}}
	shuffled := []Expense{{Amount: 1.25}, {Amount: 5.5}}

	a := Summarize(contributions, expenses)
	b := Summarize(reversed, shuffled)
	assert.Equal(t, a, b)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.TotalCollected)
	assert.Zero(t, s.TotalSpent)
	assert.Zero(t, s.Balance())
}

func TestBalanceCanGoNegative(t *testing.T) {
	s := Summarize(
		[]Contribution{{Amount: 100}},
		[]Expense{{Amount: 175}},
	)
	assert.InDelta(t, -75, s.Balance(), 1e-9)
}
