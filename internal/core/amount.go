// Package core holds the domain records the front-end exchanges with the
// fund backend and the handful of rules the client applies to them.
//
// This file contains amount parsing and formatting. The backend is loose
// about the amount field: depending on the deployment it comes back as a
// JSON number or as a quoted decimal string, so Amount tolerates both.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value. Aggregation treats it as a float, matching
// how the backend reports it.
type Amount float64

// ParseAmount converts a form value to an Amount.
// Returns ErrInvalidAmount for empty or non-numeric input.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}
	return Amount(f), nil
}

// Float64 returns the amount as a plain float for aggregation.
func (a Amount) Float64() float64 {
	return float64(a)
}

// String formats the amount without trailing zeros, the way the backend
// echoes it back.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

// UnmarshalJSON accepts both `500` and `"500"`.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ErrInvalidAmount
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}
