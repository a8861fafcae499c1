package automod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerCountsWithinWindow(t *testing.T) {
	tr := NewTracker(5 * time.Second)
	now := time.Now()

	assert.Equal(t, 1, tr.Hit("k", now))
	assert.Equal(t, 2, tr.Hit("k", now.Add(time.Second)))
	assert.Equal(t, 3, tr.Hit("k", now.Add(2*time.Second)))
	assert.Equal(t, 1, tr.Hit("other", now))
}

func TestTrackerPrunesOldEntries(t *testing.T) {
	tr := NewTracker(5 * time.Second)
	now := time.Now()

	tr.Hit("k", now)
	tr.Hit("k", now.Add(time.Second))

	// Past the horizon only the new hit remains.
	assert.Equal(t, 1, tr.Hit("k", now.Add(7*time.Second)))
	assert.Equal(t, 1, tr.Count("k", now.Add(7*time.Second)))
	assert.Equal(t, 0, tr.Count("k", now.Add(20*time.Second)))
}
