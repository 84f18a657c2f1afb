package rrecur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// weekdayMask must cover every day-of-year index a year context can slice
// into (yi.wdaymask = weekdayMask[yi.yearWeekday:], then indexed up to
// ~372), which needs 55 repetitions of the 7-day cycle, not 8.
func TestWeekdayMaskLength(t *testing.T) {
	assert.Len(t, weekdayMask, 385)
	assert.Equal(t, 0, weekdayMask[378])
	assert.Equal(t, 6, weekdayMask[384])
}

func TestPymod(t *testing.T) {
	assert.Equal(t, 1, pymod(8, 7))
	assert.Equal(t, 6, pymod(-1, 7))
	assert.Equal(t, 0, pymod(0, 7))
}

func TestDivmod(t *testing.T) {
	div, mod := divmod(-1, 7)
	assert.Equal(t, -1, div)
	assert.Equal(t, 6, mod)

	div, mod = divmod(15, 7)
	assert.Equal(t, 2, div)
	assert.Equal(t, 1, mod)
}

func TestIsLeap(t *testing.T) {
	assert.True(t, isLeap(2024))
	assert.False(t, isLeap(2023))
	assert.False(t, isLeap(1900))
	assert.True(t, isLeap(2000))
}

func TestYearLength(t *testing.T) {
	assert.Equal(t, 366, yearLength(2024))
	assert.Equal(t, 365, yearLength(2023))
}

func TestEaster(t *testing.T) {
	cases := map[int]time.Time{
		2024: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		2025: time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
		2016: time.Date(2016, time.March, 27, 0, 0, 0, 0, time.UTC),
	}
	for year, want := range cases {
		assert.True(t, want.Equal(easter(year)), "easter(%d) = %v, want %v", year, easter(year), want)
	}
}

func TestPySubscript(t *testing.T) {
	items := []int{10, 20, 30, 40}

	v, err := pySubscript(items, 0)
	assert.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = pySubscript(items, -1)
	assert.NoError(t, err)
	assert.Equal(t, 40, v)

	_, err = pySubscript(items, 4)
	assert.Error(t, err)

	_, err = pySubscript(items, -5)
	assert.Error(t, err)
}

func TestToPyWeekday(t *testing.T) {
	assert.Equal(t, 0, toPyWeekday(time.Monday))
	assert.Equal(t, 6, toPyWeekday(time.Sunday))
	assert.Equal(t, 2, toPyWeekday(time.Wednesday))
}
