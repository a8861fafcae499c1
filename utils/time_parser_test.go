package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in       string
		expected time.Duration
	}{
		{"30s", 30 * time.Second},
		{"10m", 10 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.expected, got, c.in)
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "-5m", "0s", "10x"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestXPForLevel(t *testing.T) {
	assert.EqualValues(t, 100, XPForLevel(1))
	assert.Less(t, XPForLevel(2), XPForLevel(3))
	assert.Less(t, XPForLevel(9), XPForLevel(10))
}

func TestRandRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandRange(8, 18)
		assert.GreaterOrEqual(t, v, int64(8))
		assert.LessOrEqual(t, v, int64(18))
	}
	assert.EqualValues(t, 5, RandRange(5, 5))
}
