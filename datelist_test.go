package rrecur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateListStreamOrdersAndPreservesInstant(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	d1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 2, 15, 6, 0, 0, 0, time.UTC)

	s := NewDateListStream([]time.Time{d1, d2, d3}, ny)

	v1, ok := s.Next()
	require.True(t, ok)
	assert.True(t, v1.Equal(d2))
	assert.Equal(t, ny, v1.Location())

	v2, ok := s.Next()
	require.True(t, ok)
	assert.True(t, v2.Equal(d3))

	v3, ok := s.Next()
	require.True(t, ok)
	assert.True(t, v3.Equal(d1))

	_, ok = s.Next()
	assert.False(t, ok)
}

func TestDateListStreamEmpty(t *testing.T) {
	s := NewDateListStream(nil, nil)
	_, ok := s.Next()
	assert.False(t, ok)
}
