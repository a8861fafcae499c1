package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden-bot/model"
	"warden-bot/store"
)

func TestEvaluateEscalation(t *testing.T) {
	cfg := model.AutomodConfig{WarningsBeforeTimeout: 3, WarningsBeforeSuspend: 6}

	assert.Equal(t, Escalation{}, EvaluateEscalation(0, cfg))
	assert.Equal(t, Escalation{}, EvaluateEscalation(2, cfg))
	assert.Equal(t, Escalation{Timeout: true}, EvaluateEscalation(3, cfg))
	assert.Equal(t, Escalation{Timeout: true}, EvaluateEscalation(5, cfg))
	assert.Equal(t, Escalation{Timeout: true, Suspend: true}, EvaluateEscalation(6, cfg))
	assert.Equal(t, Escalation{Timeout: true, Suspend: true}, EvaluateEscalation(9, cfg))
}

func TestRecordWarningCounts(t *testing.T) {
	e, _ := newTestEngine(t)

	for i := 1; i <= 4; i++ {
		count, err := e.RecordWarning("u1", "spam")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	require.NoError(t, e.ClearWarnings("u1"))
	count, err := e.RecordWarning("u1", "again")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEscalateTimeoutThreshold(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1")

	require.NoError(t, e.Escalate(m, 3))
	assert.Equal(t, []string{"u1"}, gw.timeouts)
	assert.Empty(t, gw.roleSets)
}

func TestEscalateSuspendThresholdOpensCase(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1")

	require.NoError(t, e.Escalate(m, 6))

	rec, err := store.GetSuspension(e.db, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.EqualValues(t, 0, rec.Until)

	c, err := store.GetCase(e.db, rec.CaseID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "auto_suspend", c.Type)
	assert.Equal(t, model.CaseOpen, c.Status)
	assert.Greater(t, c.CaseID, int64(1000))
}
