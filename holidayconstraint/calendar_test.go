package holidayconstraint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintRejectsHoliday(t *testing.T) {
	c, err := NewConstraint("us", false, false, false)
	require.NoError(t, err)

	thanksgiving2025 := time.Date(2025, time.November, 27, 0, 0, 0, 0, time.UTC)
	assert.False(t, c.Test(thanksgiving2025))

	ordinaryDay := time.Date(2025, time.November, 25, 0, 0, 0, 0, time.UTC)
	assert.True(t, c.Test(ordinaryDay))
}

func TestConstraintSkipWeekends(t *testing.T) {
	c, err := NewConstraint("us", true, false, false)
	require.NoError(t, err)

	saturday := time.Date(2025, time.November, 29, 0, 0, 0, 0, time.UTC)
	assert.False(t, c.Test(saturday))
}

func TestConstraintStopsTransformer(t *testing.T) {
	c, err := NewConstraint("us", false, false, true)
	require.NoError(t, err)
	assert.True(t, c.StopsTransformer())

	c2, err := NewConstraint("us", false, false, false)
	require.NoError(t, err)
	assert.False(t, c2.StopsTransformer())
}

func TestNewCalendarUnsupportedISO(t *testing.T) {
	_, err := NewCalendar("zz")
	assert.Error(t, err)
}

func TestRegisterAndGetCalendar(t *testing.T) {
	cal, err := NewCalendar("us")
	require.NoError(t, err)
	RegisterCalendar("US", cal)

	got, err := GetCalendar("us")
	require.NoError(t, err)
	assert.Same(t, cal, got)
}
