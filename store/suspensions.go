package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// UpsertSuspension writes a suspension record, replacing any previous record
// for the same user (last-write-wins, one active suspension per user).
func UpsertSuspension(db *sqlx.DB, rec model.SuspensionRecord) error {
	query := `INSERT INTO suspensions (user_id, until_ts, reason, actor, saved_at, case_id)
              VALUES (:user_id, :until_ts, :reason, :actor, :saved_at, :case_id)
              ON CONFLICT(user_id) DO UPDATE SET
                until_ts = excluded.until_ts,
                reason = excluded.reason,
                actor = excluded.actor,
                saved_at = excluded.saved_at,
                case_id = excluded.case_id`
	if _, err := db.NamedExec(query, rec); err != nil {
		return fmt.Errorf("failed to write suspension for user %s: %w", rec.UserID, err)
	}
	return nil
}

// GetSuspension returns the active suspension for a user, or nil if none.
func GetSuspension(db *sqlx.DB, userID string) (*model.SuspensionRecord, error) {
	var rec model.SuspensionRecord
	err := db.Get(&rec, "SELECT * FROM suspensions WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suspension for user %s: %w", userID, err)
	}
	return &rec, nil
}

// DeleteSuspension removes a suspension record. Deleting a missing record is
// not an error.
func DeleteSuspension(db *sqlx.DB, userID string) error {
	if _, err := db.Exec("DELETE FROM suspensions WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete suspension for user %s: %w", userID, err)
	}
	return nil
}

// GetExpiredSuspensions returns all timed suspensions whose deadline has
// passed.
func GetExpiredSuspensions(db *sqlx.DB, now int64) ([]model.SuspensionRecord, error) {
	var recs []model.SuspensionRecord
	query := "SELECT * FROM suspensions WHERE until_ts != 0 AND until_ts <= ?"
	if err := db.Select(&recs, query, now); err != nil {
		return nil, fmt.Errorf("failed to get expired suspensions: %w", err)
	}
	return recs, nil
}

// SaveRoleSnapshot writes a user's pre-suspension role set, replacing any
// stale snapshot.
func SaveRoleSnapshot(db *sqlx.DB, snap model.RoleSnapshot) error {
	query := `INSERT INTO role_snapshots (user_id, guild_id, roles, saved_at)
              VALUES (:user_id, :guild_id, :roles, :saved_at)
              ON CONFLICT(user_id) DO UPDATE SET
                guild_id = excluded.guild_id,
                roles = excluded.roles,
                saved_at = excluded.saved_at`
	if _, err := db.NamedExec(query, snap); err != nil {
		return fmt.Errorf("failed to save role snapshot for user %s: %w", snap.UserID, err)
	}
	return nil
}

// GetRoleSnapshot returns the saved role set for a user, or nil if none.
func GetRoleSnapshot(db *sqlx.DB, userID string) (*model.RoleSnapshot, error) {
	var snap model.RoleSnapshot
	err := db.Get(&snap, "SELECT * FROM role_snapshots WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role snapshot for user %s: %w", userID, err)
	}
	return &snap, nil
}

// DeleteRoleSnapshot removes a saved role set.
func DeleteRoleSnapshot(db *sqlx.DB, userID string) error {
	if _, err := db.Exec("DELETE FROM role_snapshots WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete role snapshot for user %s: %w", userID, err)
	}
	return nil
}
