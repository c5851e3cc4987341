/*
SPDX-License-Identifier: Apache-2.0
*/

// Package season checks collection dates against a species' allowed window.
package season

import (
	"fmt"
	"time"

	"herbtrace-chaincode/internal/domain"
)

// Window is an inclusive month-day range. A window whose start is after its end
// wraps the year boundary, e.g. 10-01..03-31.
type Window struct {
	Start domain.MonthDay
	End   domain.MonthDay
}

// YearRound is the window applied to species without configured limits.
var YearRound = Window{Start: "01-01", End: "12-31"}

// Contains reports whether date falls inside w.
func (w Window) Contains(date time.Time) (bool, error) {
	start, err := w.Start.Ordinal()
	if err != nil {
		return false, err
	}
	end, err := w.End.Ordinal()
	if err != nil {
		return false, err
	}
	day := int(date.Month())*100 + date.Day()
	if start <= end {
		return day >= start && day <= end, nil
	}
	// Wrapping window: only the gap strictly between end and start is closed.
	return !(day > end && day < start), nil
}

func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.Start, w.End)
}

// Validate rejects date when it lies outside w. species only names the rejection.
func Validate(w Window, species string, date time.Time) error {
	ok, err := w.Contains(date)
	if err != nil {
		return fmt.Errorf("invalid season window for %s: %w", species, err)
	}
	if !ok {
		return domain.Reject(domain.RuleSeason,
			"collection of %s on %s is outside the allowed season %s",
			species, date.Format(time.DateOnly), w)
	}
	return nil
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
