package moderation

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
	"warden-bot/store"
	"warden-bot/utils"
)

// Engine owns the per-user suspension state machine: suspend, restore,
// timed expiry and rejoin re-application. All entry points serialize per
// subject so a snapshot-then-mutate sequence never interleaves with another
// operation on the same user.
type Engine struct {
	db     *sqlx.DB
	gw     Gateway
	cfg    *model.Config
	notify NotifyFunc
	locks  *utils.KeyedMutex
	now    func() time.Time
}

func NewEngine(db *sqlx.DB, gw Gateway, cfg *model.Config, notify NotifyFunc) *Engine {
	return &Engine{
		db:     db,
		gw:     gw,
		cfg:    cfg,
		notify: notify,
		locks:  utils.NewKeyedMutex(),
		now:    time.Now,
	}
}

func (e *Engine) sendNotice(n Notice) {
	if e.notify != nil {
		e.notify(n)
	}
}

// DB exposes the record store for the command layer.
func (e *Engine) DB() *sqlx.DB { return e.db }

// Config returns the process configuration.
func (e *Engine) Config() *model.Config { return e.cfg }

// checkManageMember verifies the bot outranks the member right before a
// mutation. Never cached.
func (e *Engine) checkManageMember(guildID, userID, op string) error {
	bot, err := e.gw.BotRank(guildID)
	if err != nil {
		return fmt.Errorf("failed to resolve bot rank in guild %s: %w", guildID, err)
	}
	top, err := e.gw.MemberTopPosition(guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve rank of member %s: %w", userID, err)
	}
	if !CanManageMember(bot, top) {
		return &HierarchyError{Op: op, Target: "member " + userID}
	}
	return nil
}

func (e *Engine) checkManageRole(guildID, roleID, op string) error {
	bot, err := e.gw.BotRank(guildID)
	if err != nil {
		return fmt.Errorf("failed to resolve bot rank in guild %s: %w", guildID, err)
	}
	pos, err := e.gw.RolePosition(guildID, roleID)
	if err != nil {
		return fmt.Errorf("failed to resolve position of role %s: %w", roleID, err)
	}
	if !CanManageRole(bot, pos) {
		return &HierarchyError{Op: op, Target: "role " + roleID}
	}
	return nil
}

// Suspend strips a member's roles, applies the suspended role and persists
// the suspension. duration == 0 means indefinite. The hierarchy checks run
// before any side effect; the platform mutation runs before any record
// write, so a rejected mutation leaves no state behind.
//
// Suspending an already-suspended member supersedes the record but keeps
// the original role snapshot: the member's roles are already emptied, and
// snapshotting them now would permanently lose the saved set.
func (e *Engine) Suspend(m *Member, actor, reason string, duration time.Duration, caseID int64) error {
	unlock := e.locks.Lock(m.UserID)
	defer unlock()

	if err := e.checkManageMember(m.GuildID, m.UserID, "suspend"); err != nil {
		return err
	}
	if err := e.checkManageRole(m.GuildID, e.cfg.SuspendedRoleID, "suspend"); err != nil {
		return err
	}

	existing, err := store.GetSuspension(e.db, m.UserID)
	if err != nil {
		return err
	}

	saved := make([]string, len(m.RoleIDs))
	copy(saved, m.RoleIDs)

	if err := e.gw.SetMemberRoles(m.GuildID, m.UserID, []string{e.cfg.SuspendedRoleID}); err != nil {
		return fmt.Errorf("failed to apply suspended role to %s: %w", m.UserID, err)
	}

	now := e.now()
	if existing == nil {
		rolesJSON, err := json.Marshal(saved)
		if err != nil {
			return fmt.Errorf("failed to encode role snapshot for %s: %w", m.UserID, err)
		}
		snap := model.RoleSnapshot{
			UserID:  m.UserID,
			GuildID: m.GuildID,
			Roles:   string(rolesJSON),
			SavedAt: now.UnixMilli(),
		}
		if err := store.SaveRoleSnapshot(e.db, snap); err != nil {
			return err
		}
	}

	var until int64
	historyType := model.HistorySuspend
	if duration > 0 {
		until = now.Add(duration).UnixMilli()
		historyType = model.HistorySuspendTimed
	}
	rec := model.SuspensionRecord{
		UserID:  m.UserID,
		Until:   until,
		Reason:  reason,
		Actor:   actor,
		SavedAt: now.UnixMilli(),
		CaseID:  caseID,
	}
	if err := store.UpsertSuspension(e.db, rec); err != nil {
		return err
	}

	if err := store.AddHistory(e.db, model.HistoryEntry{
		UserID: m.UserID,
		Type:   historyType,
		Reason: reason,
		Actor:  actor,
		At:     now.UnixMilli(),
		CaseID: caseID,
	}); err != nil {
		log.Printf("Failed to record suspension history for %s: %v", m.UserID, err)
	}

	expiry := "Permanent"
	if until != 0 {
		expiry = fmt.Sprintf("<t:%d:R>", until/1000)
	}
	e.sendNotice(Notice{
		Color:       utils.ColorRed,
		Title:       fmt.Sprintf("🔴 Suspended (Case #%s)", caseLabel(caseID)),
		Description: fmt.Sprintf("%s has been suspended.", m.Tag),
		Fields: [][2]string{
			{"Moderator", actor},
			{"Reason", reason},
			{"Until", expiry},
		},
	})
	return nil
}

// Restore reinstates a member's pre-suspension roles. Returns false with a
// nil error when there is nothing to restore; the snapshot is consumed
// exactly once.
func (e *Engine) Restore(m *Member, actor, reason string, caseID int64) (bool, error) {
	unlock := e.locks.Lock(m.UserID)
	defer unlock()

	if err := e.checkManageMember(m.GuildID, m.UserID, "restore"); err != nil {
		return false, err
	}

	snap, err := store.GetRoleSnapshot(e.db, m.UserID)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}

	var roles []string
	if err := json.Unmarshal([]byte(snap.Roles), &roles); err != nil {
		return false, fmt.Errorf("failed to decode role snapshot for %s: %w", m.UserID, err)
	}

	if err := e.gw.SetMemberRoles(m.GuildID, m.UserID, roles); err != nil {
		return false, fmt.Errorf("failed to restore roles for %s: %w", m.UserID, err)
	}

	if err := store.DeleteRoleSnapshot(e.db, m.UserID); err != nil {
		return false, err
	}
	if err := store.DeleteSuspension(e.db, m.UserID); err != nil {
		return false, err
	}

	if err := store.AddHistory(e.db, model.HistoryEntry{
		UserID: m.UserID,
		Type:   model.HistoryRestore,
		Reason: reason,
		Actor:  actor,
		At:     e.now().UnixMilli(),
		CaseID: caseID,
	}); err != nil {
		log.Printf("Failed to record restore history for %s: %v", m.UserID, err)
	}

	e.sendNotice(Notice{
		Color:       utils.ColorGreen,
		Title:       fmt.Sprintf("🟢 Restored (Case #%s)", caseLabel(caseID)),
		Description: fmt.Sprintf("%s has been restored.", m.Tag),
		Fields: [][2]string{
			{"Moderator", actor},
			{"Reason", reason},
		},
	})
	return true, nil
}

// ReconcileExpired restores every timed suspension past its deadline. Each
// subject is tried against every guild the bot is in and handled at the
// first guild where the member is found. Per-subject errors are logged and
// retried on the next sweep.
func (e *Engine) ReconcileExpired() {
	recs, err := store.GetExpiredSuspensions(e.db, e.now().UnixMilli())
	if err != nil {
		log.Printf("Failed to load expired suspensions: %v", err)
		return
	}

	for _, rec := range recs {
		e.reconcileOne(rec)
	}
}

func (e *Engine) reconcileOne(rec model.SuspensionRecord) {
	for _, guildID := range e.gw.GuildIDs() {
		m, err := e.gw.Member(guildID, rec.UserID)
		if err != nil || m == nil {
			continue
		}

		restored, err := e.Restore(m, "system", "Timed suspension expired", rec.CaseID)
		if err != nil {
			log.Printf("Failed to restore expired suspension for %s in guild %s: %v", rec.UserID, guildID, err)
			continue
		}
		if !restored {
			// A suspension without a snapshot cannot be restored; drop the
			// record so the sweep does not retry it forever.
			log.Printf("Expired suspension for %s has no role snapshot, dropping record", rec.UserID)
			if err := store.DeleteSuspension(e.db, rec.UserID); err != nil {
				log.Printf("Failed to drop orphaned suspension for %s: %v", rec.UserID, err)
			}
		}
		return
	}
}

// ReapplyOnRejoin re-adds the suspended role when a suspended user rejoins.
// The stored record and snapshot are presumed accurate and left untouched.
// Returns false when the user has no active suspension.
func (e *Engine) ReapplyOnRejoin(guildID, userID, tag string) (bool, error) {
	unlock := e.locks.Lock(userID)
	defer unlock()

	rec, err := store.GetSuspension(e.db, userID)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}

	if err := e.checkManageRole(guildID, e.cfg.SuspendedRoleID, "reapply"); err != nil {
		return true, err
	}
	if err := e.gw.AddMemberRole(guildID, userID, e.cfg.SuspendedRoleID); err != nil {
		return true, fmt.Errorf("failed to re-apply suspended role to %s: %w", userID, err)
	}

	e.sendNotice(Notice{
		Color:       utils.ColorRed,
		Title:       "🔁 Suspended User Rejoined",
		Description: fmt.Sprintf("%s rejoined and was re-suspended automatically.", tag),
		Fields: [][2]string{
			{"Reason", rec.Reason},
			{"Case", "#" + caseLabel(rec.CaseID)},
		},
	})
	return true, nil
}

func caseLabel(caseID int64) string {
	if caseID == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", caseID)
}
