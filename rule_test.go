package rrecur

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "MO", MO.String())
	assert.Equal(t, "+2TU", TU.Nth(2).String())
	assert.Equal(t, "-1FR", FR.Nth(-1).String())
}

func TestFrequencyOrdering(t *testing.T) {
	assert.True(t, YEARLY < MONTHLY)
	assert.True(t, MONTHLY < WEEKLY)
	assert.True(t, HOURLY < MINUTELY)
	assert.True(t, MINUTELY < SECONDLY)
}

func TestRuleString(t *testing.T) {
	r := Rule{
		Freq:     WEEKLY,
		Interval: 2,
		Count:    4,
		Byday:    []Weekday{MO, TH.Nth(-1)},
		Bymonth:  []int{3, 4},
	}
	s := r.String()
	assert.Contains(t, s, "FREQ=WEEKLY")
	assert.Contains(t, s, "INTERVAL=2")
	assert.Contains(t, s, "COUNT=4")
	assert.Contains(t, s, "BYMONTH=3,4")
	assert.Contains(t, s, "BYDAY=MO,-1TH")
}
