package moderation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden-bot/model"
	"warden-bot/store"
)

type fakeGateway struct {
	members    map[string]*Member
	botRank    Rank
	rolePos    map[string]int
	topPos     map[string]int
	roleSets   [][]string
	addedRoles []string
	timeouts   []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		members: map[string]*Member{},
		botRank: Rank{ManageRoles: true, TopPosition: 10},
		rolePos: map[string]int{},
		topPos:  map[string]int{},
	}
}

func key(guildID, userID string) string { return guildID + ":" + userID }

func (f *fakeGateway) Member(guildID, userID string) (*Member, error) {
	m, ok := f.members[key(guildID, userID)]
	if !ok {
		return nil, fmt.Errorf("member %s not found", userID)
	}
	return m, nil
}

func (f *fakeGateway) BotRank(string) (Rank, error) { return f.botRank, nil }

func (f *fakeGateway) RolePosition(_, roleID string) (int, error) { return f.rolePos[roleID], nil }

func (f *fakeGateway) MemberTopPosition(_, userID string) (int, error) { return f.topPos[userID], nil }

func (f *fakeGateway) SetMemberRoles(guildID, userID string, roleIDs []string) error {
	f.roleSets = append(f.roleSets, roleIDs)
	if m, ok := f.members[key(guildID, userID)]; ok {
		m.RoleIDs = roleIDs
	}
	return nil
}

func (f *fakeGateway) AddMemberRole(_, _, roleID string) error {
	f.addedRoles = append(f.addedRoles, roleID)
	return nil
}

func (f *fakeGateway) TimeoutMember(_, userID string, _ *time.Time, _ string) error {
	f.timeouts = append(f.timeouts, userID)
	return nil
}

func (f *fakeGateway) GuildIDs() []string { return []string{"g1"} }

func newTestEngine(t *testing.T) (*Engine, *fakeGateway) {
	t.Helper()
	db, err := store.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gw := newFakeGateway()
	cfg := &model.Config{
		SuspendedRoleID: "suspended",
		Automod: model.AutomodConfig{
			WarningsBeforeTimeout: 3,
			WarningsBeforeSuspend: 6,
			TimeoutOnWarnMs:       3600000,
		},
	}
	return NewEngine(db, gw, cfg, nil), gw
}

func addMember(gw *fakeGateway, userID string, roles ...string) *Member {
	m := &Member{GuildID: "g1", UserID: userID, Tag: "user-" + userID, RoleIDs: roles}
	gw.members[key("g1", userID)] = m
	return m
}

func TestSuspendRestoreRoundTrip(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1", "r2")

	require.NoError(t, e.Suspend(m, "mod", "spamming", 0, 0))

	require.Len(t, gw.roleSets, 1)
	assert.Equal(t, []string{"suspended"}, gw.roleSets[0])

	rec, err := store.GetSuspension(e.db, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.EqualValues(t, 0, rec.Until)
	assert.Equal(t, "spamming", rec.Reason)

	restored, err := e.Restore(m, "mod", "appeal accepted", 0)
	require.NoError(t, err)
	assert.True(t, restored)

	require.Len(t, gw.roleSets, 2)
	assert.Equal(t, []string{"r1", "r2"}, gw.roleSets[1])

	rec, err = store.GetSuspension(e.db, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)
	snap, err := store.GetRoleSnapshot(e.db, "u1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRestoreWithoutSuspension(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1")

	restored, err := e.Restore(m, "mod", "", 0)
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Empty(t, gw.roleSets)
}

func TestSuspendHierarchyRejected(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1")
	gw.topPos["u1"] = 20 // above the bot

	err := e.Suspend(m, "mod", "test", 0, 0)
	var hier *HierarchyError
	require.ErrorAs(t, err, &hier)

	assert.Empty(t, gw.roleSets)
	rec, err := store.GetSuspension(e.db, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestResuspendKeepsOriginalSnapshot(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1", "r2")

	require.NoError(t, e.Suspend(m, "mod", "first", 0, 0))
	// The member now holds only the suspended role.
	require.NoError(t, e.Suspend(m, "mod", "second", time.Hour, 0))

	rec, err := store.GetSuspension(e.db, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "second", rec.Reason)
	assert.NotZero(t, rec.Until)

	restored, err := e.Restore(m, "mod", "", 0)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, []string{"r1", "r2"}, gw.roleSets[len(gw.roleSets)-1])
}

func TestReconcileExpiredRestores(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1")

	require.NoError(t, e.Suspend(m, "mod", "timed", time.Minute, 0))

	e.now = func() time.Time { return time.Now().Add(time.Hour) }
	e.ReconcileExpired()

	rec, err := store.GetSuspension(e.db, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, []string{"r1"}, gw.roleSets[len(gw.roleSets)-1])

	// Idempotent: a second sweep finds nothing to do.
	before := len(gw.roleSets)
	e.ReconcileExpired()
	assert.Len(t, gw.roleSets, before)
}

func TestReconcileOrphanDropsRecord(t *testing.T) {
	e, gw := newTestEngine(t)
	addMember(gw, "u1", "r1")

	require.NoError(t, store.UpsertSuspension(e.db, model.SuspensionRecord{
		UserID:  "u1",
		Until:   time.Now().Add(-time.Hour).UnixMilli(),
		Reason:  "orphan",
		Actor:   "mod",
		SavedAt: time.Now().UnixMilli(),
	}))

	e.ReconcileExpired()

	rec, err := store.GetSuspension(e.db, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Empty(t, gw.roleSets)
}

func TestReapplyOnRejoin(t *testing.T) {
	e, gw := newTestEngine(t)
	m := addMember(gw, "u1", "r1")

	applied, err := e.ReapplyOnRejoin("g1", "u1", m.Tag)
	require.NoError(t, err)
	assert.False(t, applied)

	require.NoError(t, e.Suspend(m, "mod", "spamming", 0, 0))

	applied, err = e.ReapplyOnRejoin("g1", "u1", m.Tag)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []string{"suspended"}, gw.addedRoles)

	// The stored snapshot must survive the rejoin untouched.
	snap, err := store.GetRoleSnapshot(e.db, "u1")
	require.NoError(t, err)
	require.NotNil(t, snap)
}
