package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWarningCounts(t *testing.T) {
	db := testDB(t)
	now := time.Now().UnixMilli()

	count, err := AddWarning(db, "u1", "first", now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = AddWarning(db, "u1", "second", now+1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Another user's log is independent.
	count, err = AddWarning(db, "u2", "other", now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWarningLogIsBounded(t *testing.T) {
	db := testDB(t)
	now := time.Now().UnixMilli()

	var count int
	var err error
	for i := 0; i < maxWarnings+5; i++ {
		count, err = AddWarning(db, "u1", fmt.Sprintf("warning %d", i), now+int64(i))
		require.NoError(t, err)
	}
	assert.Equal(t, maxWarnings, count)

	// The oldest entries were evicted.
	recs, err := GetWarnings(db, "u1", maxWarnings)
	require.NoError(t, err)
	require.Len(t, recs, maxWarnings)
	assert.Equal(t, fmt.Sprintf("warning %d", maxWarnings+4), recs[0].Reason)
}

func TestClearWarnings(t *testing.T) {
	db := testDB(t)
	now := time.Now().UnixMilli()

	_, err := AddWarning(db, "u1", "spam", now)
	require.NoError(t, err)
	require.NoError(t, ClearWarnings(db, "u1"))

	count, err := CountWarnings(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
