package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemaining_Sign(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 30*time.Minute, Remaining(now.Add(30*time.Minute), now))
	assert.Equal(t, -90*time.Minute, Remaining(now.Add(-90*time.Minute), now))
	assert.Equal(t, time.Duration(0), Remaining(now, now))
}

func TestRemaining_Antisymmetry(t *testing.T) {
	a := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pairs := []time.Time{
		a.Add(17 * time.Minute),
		a.Add(-3 * 24 * time.Hour),
		a,
		a.Add(time.Nanosecond),
	}
	for _, b := range pairs {
		assert.Equal(t, Remaining(a, b), -Remaining(b, a))
	}
}

func TestBreakdown_FloorDivision(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want Parts
	}{
		{"zero", 0, Parts{0, 0, 0}},
		{"under a minute", 59 * time.Second, Parts{0, 0, 0}},
		{"ninety minutes", 90 * time.Minute, Parts{90, 1, 0}},
		{"negative ninety minutes", -90 * time.Minute, Parts{90, 1, 0}},
		{"just under a day", 23*time.Hour + 59*time.Minute, Parts{1439, 23, 0}},
		{"three days and change", 3*24*time.Hour + 5*time.Hour + 30*time.Minute, Parts{4650, 77, 3}},
		{"overdue two days", -49 * time.Hour, Parts{2940, 49, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Breakdown(tc.d))
		})
	}
}

func TestParseDue(t *testing.T) {
	due, err := ParseDue("2025-06-01T12:00:00+03:00")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), *due)
	assert.Equal(t, time.UTC, due.Location())

	due, err = ParseDue("")
	require.NoError(t, err)
	assert.Nil(t, due)

	due, err = ParseDue("not-a-timestamp")
	require.Error(t, err)
	assert.Nil(t, due)
}
