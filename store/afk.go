package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// SetAfk marks a user as away, replacing any previous record.
func SetAfk(db *sqlx.DB, rec model.AfkRecord) error {
	query := `INSERT INTO afk (user_id, reason, since) VALUES (:user_id, :reason, :since)
              ON CONFLICT(user_id) DO UPDATE SET reason = excluded.reason, since = excluded.since`
	if _, err := db.NamedExec(query, rec); err != nil {
		return fmt.Errorf("failed to set AFK for user %s: %w", rec.UserID, err)
	}
	return nil
}

// GetAfk returns a user's AFK record, or nil if the user is not away.
func GetAfk(db *sqlx.DB, userID string) (*model.AfkRecord, error) {
	var rec model.AfkRecord
	err := db.Get(&rec, "SELECT * FROM afk WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get AFK for user %s: %w", userID, err)
	}
	return &rec, nil
}

// ClearAfk removes a user's AFK record.
func ClearAfk(db *sqlx.DB, userID string) error {
	if _, err := db.Exec("DELETE FROM afk WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to clear AFK for user %s: %w", userID, err)
	}
	return nil
}
