package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Documents carry full timestamps while the period is calendar days.
// The day bounds must keep the two views consistent: every timestamp
// Contains accepts has to satisfy StartInclusive <= t < EndExclusive.
func TestPeriodDayBounds(t *testing.T) {
	p := Period{From: day(2026, 8, 1), To: day(2026, 8, 31)}

	tests := []struct {
		name string
		doc  time.Time
		in   bool
	}{
		{"midnight of the first day", day(2026, 8, 1), true},
		{"mid-period", time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC), true},
		{"afternoon of the last day", time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC), true},
		{"last second of the last day", time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC), true},
		{"midnight after the period", day(2026, 9, 1), false},
		{"before the period", time.Date(2026, 7, 31, 23, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, p.Contains(tt.doc))

			bounded := !tt.doc.Before(p.StartInclusive()) && tt.doc.Before(p.EndExclusive())
			assert.Equal(t, tt.in, bounded, "range bounds disagree with Contains")
		})
	}
}

func TestPeriodEndExclusive_IgnoresTimeOfDay(t *testing.T) {
	// A To parsed with a time component still covers its whole day.
	p := Period{
		From: day(2026, 8, 1),
		To:   time.Date(2026, 8, 31, 10, 15, 0, 0, time.UTC),
	}
	assert.Equal(t, day(2026, 9, 1), p.EndExclusive())
	assert.Equal(t, day(2026, 8, 1), p.StartInclusive())
}
