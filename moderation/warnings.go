package moderation

import (
	"fmt"
	"log"
	"time"

	"warden-bot/model"
	"warden-bot/store"
)

// Escalation is the automated action set a warning count triggers. Both
// actions fire together on the call that crosses the suspension threshold.
type Escalation struct {
	Timeout bool
	Suspend bool
}

// EvaluateEscalation compares a warning count against the configured
// thresholds. The timeout threshold is always below the suspension
// threshold.
func EvaluateEscalation(count int, cfg model.AutomodConfig) Escalation {
	return Escalation{
		Timeout: count >= cfg.WarningsBeforeTimeout,
		Suspend: count >= cfg.WarningsBeforeSuspend,
	}
}

// RecordWarning appends to a user's infraction log and returns the new
// count. The log is bounded; the oldest entries are evicted first.
func (e *Engine) RecordWarning(userID, reason string) (int, error) {
	return store.AddWarning(e.db, userID, reason, e.now().UnixMilli())
}

// ClearWarnings resets a user's infraction log. Already-applied timeouts or
// suspensions are not reverted.
func (e *Engine) ClearWarnings(userID string) error {
	return store.ClearWarnings(e.db, userID)
}

// Escalate applies the automated escalation for a warning count: a timeout
// once the first threshold is reached, and an indefinite suspension with an
// open case once the second is. Timeout failures are logged and do not
// block the suspension step.
func (e *Engine) Escalate(m *Member, count int) error {
	esc := EvaluateEscalation(count, e.cfg.Automod)

	if esc.Timeout {
		until := e.now().Add(time.Duration(e.cfg.Automod.TimeoutOnWarnMs) * time.Millisecond)
		if err := e.gw.TimeoutMember(m.GuildID, m.UserID, &until, "Auto-timeout after warnings"); err != nil {
			log.Printf("Failed to auto-timeout %s: %v", m.UserID, err)
		} else if err := store.AddHistory(e.db, model.HistoryEntry{
			UserID: m.UserID,
			Type:   model.HistoryTimeout,
			Reason: "Auto-timeout after warnings",
			Actor:  "system",
			At:     e.now().UnixMilli(),
		}); err != nil {
			log.Printf("Failed to record auto-timeout history for %s: %v", m.UserID, err)
		}
	}

	if esc.Suspend {
		reason := fmt.Sprintf("Automatic suspension after %d warnings", count)
		caseID, err := store.AddCase(e.db, model.CaseRecord{
			Type:      "auto_suspend",
			UserID:    m.UserID,
			UserTag:   m.Tag,
			Actor:     "system",
			Reason:    reason,
			CreatedAt: e.now().UnixMilli(),
			Status:    model.CaseOpen,
		})
		if err != nil {
			return fmt.Errorf("failed to open auto-suspension case for %s: %w", m.UserID, err)
		}
		if err := e.Suspend(m, "system", reason, 0, caseID); err != nil {
			return fmt.Errorf("failed to auto-suspend %s: %w", m.UserID, err)
		}
	}

	return nil
}
