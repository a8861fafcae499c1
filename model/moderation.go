package model

// WarningRecord is a single entry in a user's append-only warning log.
type WarningRecord struct {
	ID     int64  `db:"id"` // Primary Key, Auto-increment
	UserID string `db:"user_id"`
	Reason string `db:"reason"`
	At     int64  `db:"at"`
}

// HistoryEntry is a display-only audit trail event. Never read for control
// decisions.
type HistoryEntry struct {
	ID     int64  `db:"id"` // Primary Key, Auto-increment
	UserID string `db:"user_id"`
	Type   string `db:"type"`
	Reason string `db:"reason"`
	Actor  string `db:"actor"`
	At     int64  `db:"at"`
	CaseID int64  `db:"case_id"`
}

// History entry types.
const (
	HistorySuspend      = "suspend"
	HistorySuspendTimed = "suspend_timed"
	HistoryRestore      = "restore"
	HistoryWarn         = "warn"
	HistoryAutomodWarn  = "automod_warn"
	HistoryTimeout      = "timeout"
	HistoryUntimeout    = "untimeout"
	HistoryKick         = "kick"
	HistoryBan          = "ban"
	HistoryAppeal       = "appeal"
	HistoryPartner      = "partner"
	HistoryClearWarns   = "clearwarnings"
	HistoryJoinAction   = "join_auto_action"
)
