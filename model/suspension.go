package model

// SuspensionRecord represents an active suspension. Presence in the
// 'suspensions' table means the suspension is active; restore and expiry
// delete the row instead of flagging it.
type SuspensionRecord struct {
	UserID  string `db:"user_id"` // Primary Key
	Until   int64  `db:"until_ts"`
	Reason  string `db:"reason"`
	Actor   string `db:"actor"`
	SavedAt int64  `db:"saved_at"`
	CaseID  int64  `db:"case_id"`
}

// Expired reports whether a timed suspension has passed its deadline.
// Until == 0 means indefinite.
func (r SuspensionRecord) Expired(now int64) bool {
	return r.Until != 0 && r.Until <= now
}

// RoleSnapshot stores the roles a user held immediately before suspension,
// excluding the guild's implicit @everyone role. Owned by the suspension
// engine: written with the SuspensionRecord, consumed exactly once by restore.
type RoleSnapshot struct {
	UserID  string `db:"user_id"` // Primary Key
	GuildID string `db:"guild_id"`
	Roles   string `db:"roles"` // JSON array of role IDs
	SavedAt int64  `db:"saved_at"`
}
