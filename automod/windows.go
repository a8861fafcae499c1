package automod

import (
	"sync"
	"time"
)

// Tracker keeps rolling timestamp windows keyed by an arbitrary string.
// Entries older than the horizon are pruned on every access. State lives
// for the process lifetime only; it bounds short-horizon detection and is
// safe to lose on restart.
type Tracker struct {
	mu     sync.Mutex
	window time.Duration
	hits   map[string][]time.Time
}

func NewTracker(window time.Duration) *Tracker {
	return &Tracker{
		window: window,
		hits:   make(map[string][]time.Time),
	}
}

// Hit records an event for key and returns the number of events inside the
// window, including this one.
func (t *Tracker) Hit(key string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.prune(key, now)
	kept = append(kept, now)
	t.hits[key] = kept
	return len(kept)
}

// Count returns the number of events for key still inside the window.
func (t *Tracker) Count(key string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.prune(key, now)
	if len(kept) == 0 {
		delete(t.hits, key)
		return 0
	}
	t.hits[key] = kept
	return len(kept)
}

func (t *Tracker) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-t.window)
	kept := t.hits[key][:0]
	for _, ts := range t.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
