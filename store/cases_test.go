package store

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden-bot/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCaseIDsStartAboveSeed(t *testing.T) {
	db := testDB(t)

	first, err := AddCase(db, model.CaseRecord{
		Type: "banish", UserID: "u1", UserTag: "alice", Actor: "mod",
		Reason: "spam", CreatedAt: time.Now().UnixMilli(), Status: model.CaseOpen,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1001, first)

	second, err := AddCase(db, model.CaseRecord{
		Type: "appeal", UserID: "u2", UserTag: "bob", Actor: "bob",
		Reason: "let me in", CreatedAt: time.Now().UnixMilli(), Status: model.CaseOpen,
	})
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

func TestCloseCase(t *testing.T) {
	db := testDB(t)

	id, err := AddCase(db, model.CaseRecord{
		Type: "banish", UserID: "u1", UserTag: "alice", Actor: "mod",
		Reason: "spam", CreatedAt: time.Now().UnixMilli(), Status: model.CaseOpen,
	})
	require.NoError(t, err)

	closed, err := CloseCase(db, id, "mod", "resolved", time.Now().UnixMilli())
	require.NoError(t, err)
	assert.True(t, closed)

	rec, err := GetCase(db, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, model.CaseClosed, rec.Status)
	assert.Equal(t, "mod", rec.ClosedBy)
	assert.Equal(t, "resolved", rec.Note)

	// Closing twice or closing an unknown case reports false.
	closed, err = CloseCase(db, id, "mod", "", time.Now().UnixMilli())
	require.NoError(t, err)
	assert.False(t, closed)
	closed, err = CloseCase(db, 999999, "mod", "", time.Now().UnixMilli())
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestGetCaseUnknown(t *testing.T) {
	db := testDB(t)

	rec, err := GetCase(db, 42)
	require.NoError(t, err)
	assert.Nil(t, rec)
}
