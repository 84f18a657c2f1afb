package rrecur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s Stream, max int) []time.Time {
	t.Helper()
	var out []time.Time
	for i := 0; i < max; i++ {
		v, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func mustExpander(t *testing.T, r Rule) *Expander {
	t.Helper()
	e, err := NewExpander(r, time.UTC, false)
	require.NoError(t, err)
	return e
}

// Scenario 1 (spec §8): FREQ=MONTHLY;COUNT=3.
func TestExpanderMonthlyCount(t *testing.T) {
	dtstart := time.Date(2014, 3, 14, 4, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{Freq: MONTHLY, Count: 3, Dtstart: dtstart})

	got := collect(t, e, 10)
	want := []time.Time{
		time.Date(2014, 3, 14, 4, 0, 0, 0, time.UTC),
		time.Date(2014, 4, 14, 4, 0, 0, 0, time.UTC),
		time.Date(2014, 5, 14, 4, 0, 0, 0, time.UTC),
	}
	require.Len(t, got, 3)
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "index %d: got %v want %v", i, got[i], want[i])
	}
}

// Scenario 2: FREQ=WEEKLY;INTERVAL=2;BYDAY=TU,TH;COUNT=4.
func TestExpanderWeeklyIntervalByday(t *testing.T) {
	dtstart := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC) // Tuesday
	e := mustExpander(t, Rule{
		Freq:     WEEKLY,
		Interval: 2,
		Byday:    []Weekday{TU, TH},
		Count:    4,
		Dtstart:  dtstart,
	})

	got := collect(t, e, 10)
	want := []time.Time{
		time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 18, 9, 0, 0, 0, time.UTC),
	}
	require.Len(t, got, 4)
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "index %d: got %v want %v", i, got[i], want[i])
	}
}

// Scenario 3: FREQ=MONTHLY;BYDAY=-1FR;COUNT=3.
func TestExpanderMonthlyLastFriday(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{
		Freq:    MONTHLY,
		Byday:   []Weekday{FR.Nth(-1)},
		Count:   3,
		Dtstart: dtstart,
	})

	got := collect(t, e, 10)
	want := []time.Time{
		time.Date(2024, 1, 26, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 23, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 29, 12, 0, 0, 0, time.UTC),
	}
	require.Len(t, got, 3)
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "index %d: got %v want %v", i, got[i], want[i])
	}
}

// Scenario 4: FREQ=YEARLY;BYMONTH=3;BYDAY=2SU;COUNT=3.
func TestExpanderYearlySecondSundayOfMarch(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{
		Freq:    YEARLY,
		Bymonth: []int{3},
		Byday:   []Weekday{SU.Nth(2)},
		Count:   3,
		Dtstart: dtstart,
	})

	got := collect(t, e, 10)
	want := []time.Time{
		time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 2, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 8, 2, 0, 0, 0, time.UTC),
	}
	require.Len(t, got, 3)
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "index %d: got %v want %v", i, got[i], want[i])
	}
}

// Scenario 5: FREQ=DAILY;COUNT=5;BYSETPOS=1;BYHOUR=9,17.
func TestExpanderDailyBysetposBound(t *testing.T) {
	dtstart := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{
		Freq:     DAILY,
		Count:    5,
		Bysetpos: []int{1},
		Byhour:   []int{9, 17},
		Dtstart:  dtstart,
	})

	got := collect(t, e, 10)
	require.Len(t, got, 5)
	for i, v := range got {
		assert.Equal(t, 9, v.Hour(), "index %d", i)
		assert.Equal(t, 1+i, v.Day())
	}
}

func TestExpanderUntilInclusive(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{Freq: DAILY, Dtstart: dtstart, Until: until})

	got := collect(t, e, 100)
	require.Len(t, got, 3)
	assert.True(t, until.Equal(got[len(got)-1]))
}

func TestExpanderMissingDtstart(t *testing.T) {
	_, err := NewExpander(Rule{Freq: DAILY}, time.UTC, false)
	require.Error(t, err)
	var mde *MissingDataError
	assert.ErrorAs(t, err, &mde)
}

func TestExpanderMonotonic(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{Freq: DAILY, Interval: 3, Dtstart: dtstart})

	got := collect(t, e, 50)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].After(got[i-1]))
	}
}

// Two BYSETPOS values that resolve to the same (day, time) must emit once.
func TestExpanderBysetposDedup(t *testing.T) {
	dtstart := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{
		Freq:     DAILY,
		Count:    3,
		Bysetpos: []int{1, 1},
		Byhour:   []int{9},
		Dtstart:  dtstart,
	})

	got := collect(t, e, 10)
	require.Len(t, got, 3)
	for i, v := range got {
		assert.Equal(t, 1+i, v.Day(), "index %d", i)
	}
}

// A sub-daily rule whose day-level filters can never match must still
// terminate (at maxYear) rather than spin one interval at a time forever.
func TestExpanderSecondlyImpossibleTerminates(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{
		Freq:       SECONDLY,
		Bymonth:    []int{2},
		Bymonthday: []int{30},
		Dtstart:    dtstart,
	})

	got := collect(t, e, 1)
	assert.Empty(t, got)
}

func TestExpanderBymonthdayPositiveNegativeOR(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := mustExpander(t, Rule{
		Freq:       MONTHLY,
		Bymonthday: []int{1, -1},
		Count:      4,
		Dtstart:    dtstart,
	})

	got := collect(t, e, 10)
	require.Len(t, got, 4)
	want := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "index %d: got %v want %v", i, got[i], want[i])
	}
}
