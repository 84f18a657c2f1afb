package rrecur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 6 (spec §8): EXDATE merge include [T1,T2,T3] exclude [T2] -> [T1,T3].
func TestMergerExdateSubtraction(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	include := NewDateListStream([]time.Time{t1, t2, t3}, time.UTC)
	exclude := NewDateListStream([]time.Time{t2}, time.UTC)

	m := NewMerger([]Stream{include}, []Stream{exclude}, 0)

	var got []time.Time
	for {
		v, ok := m.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}

	require.Len(t, got, 2)
	assert.True(t, t1.Equal(got[0]))
	assert.True(t, t3.Equal(got[1]))
}

func TestMergerDeduplicatesAcrossStreams(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	a := NewDateListStream([]time.Time{t1, t2}, time.UTC)
	b := NewDateListStream([]time.Time{t1}, time.UTC)

	m := NewMerger([]Stream{a, b}, nil, 0)

	var got []time.Time
	for {
		v, ok := m.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Len(t, got, 2)
}

func TestMergerIterationLimitTruncates(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	include := NewDateListStream([]time.Time{t1, t2, t3}, time.UTC)
	m := NewMerger([]Stream{include}, nil, 2)

	var got []time.Time
	for {
		v, ok := m.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Len(t, got, 2)
}

func TestMergerNoInclusionStreamsIsEmpty(t *testing.T) {
	m := NewMerger(nil, nil, 0)
	_, ok := m.Next()
	assert.False(t, ok)
}
