/*
SPDX-License-Identifier: Apache-2.0
*/

package domain

import (
	"fmt"
	"time"
)

// daysInMonth uses a leap year so that "02-29" is accepted.
var daysInMonth = [...]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Parse splits m into month and day.
func (m MonthDay) Parse() (time.Month, int, error) {
	var month, day int
	if len(m) != 5 || m[2] != '-' {
		return 0, 0, fmt.Errorf("month-day %q must be formatted MM-DD", string(m))
	}
	if _, err := fmt.Sscanf(string(m), "%02d-%02d", &month, &day); err != nil {
		return 0, 0, fmt.Errorf("month-day %q must be formatted MM-DD: %w", string(m), err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month-day %q has invalid month", string(m))
	}
	if day < 1 || day > daysInMonth[month-1] {
		return 0, 0, fmt.Errorf("month-day %q has invalid day", string(m))
	}
	return time.Month(month), day, nil
}

// Ordinal returns month*100+day, which orders month-days within a year.
func (m MonthDay) Ordinal() (int, error) {
	month, day, err := m.Parse()
	if err != nil {
		return 0, err
	}
	return int(month)*100 + day, nil
}

// MonthDayOf returns the month-day of t.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay(fmt.Sprintf("%02d-%02d", int(t.Month()), t.Day()))
}
