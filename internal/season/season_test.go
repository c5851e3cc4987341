package season

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbtrace-chaincode/internal/domain"
)

func TestNonWrappingWindowBoundaries(t *testing.T) {
	w := Window{Start: "07-01", End: "09-30"}
	cases := []struct {
		date string
		want bool
	}{
		{"2025-07-01", true},
		{"2025-09-30", true},
		{"2025-08-15", true},
		{"2025-06-30", false},
		{"2025-10-01", false},
		{"2025-01-15", false},
	}
	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			d, err := ParseDate(tc.date)
			require.NoError(t, err)
			got, err := w.Contains(d)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWrappingWindow(t *testing.T) {
	w := Window{Start: "10-01", End: "03-31"}
	cases := []struct {
		date string
		want bool
	}{
		{"2025-12-25", true},
		{"2025-10-01", true},
		{"2025-03-31", true},
		{"2025-01-01", true},
		{"2025-12-31", true},
		{"2025-07-15", false},
		{"2025-04-01", false},
		{"2025-09-30", false},
	}
	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			d, err := ParseDate(tc.date)
			require.NoError(t, err)
			got, err := w.Contains(d)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestYearRoundAcceptsEveryDay(t *testing.T) {
	for _, s := range []string{"2024-01-01", "2024-02-29", "2024-07-04", "2024-12-31"} {
		d, err := ParseDate(s)
		require.NoError(t, err)
		got, err := YearRound.Contains(d)
		require.NoError(t, err)
		assert.True(t, got, s)
	}
}

func TestValidateRejectsOutOfSeason(t *testing.T) {
	d, err := ParseDate("2025-07-15")
	require.NoError(t, err)
	err = Validate(Window{Start: "10-01", End: "03-31"}, "ASHWAGANDHA", d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRejected))
	assert.Contains(t, err.Error(), "ASHWAGANDHA")
	assert.Contains(t, err.Error(), "10-01 to 03-31")
}

func TestValidateInvalidWindow(t *testing.T) {
	d, err := ParseDate("2025-07-15")
	require.NoError(t, err)
	err = Validate(Window{Start: "13-01", End: "03-31"}, "TULSI", d)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrRejected))
}
