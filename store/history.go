package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

const maxHistory = 100

// AddHistory appends an audit event to a user's history log.
func AddHistory(db *sqlx.DB, entry model.HistoryEntry) error {
	query := `INSERT INTO history (user_id, type, reason, actor, at, case_id)
              VALUES (:user_id, :type, :reason, :actor, :at, :case_id)`
	if _, err := db.NamedExec(query, entry); err != nil {
		return fmt.Errorf("failed to insert history for user %s: %w", entry.UserID, err)
	}

	evict := `DELETE FROM history WHERE user_id = ? AND id NOT IN (
                SELECT id FROM history WHERE user_id = ? ORDER BY id DESC LIMIT ?)`
	if _, err := db.Exec(evict, entry.UserID, entry.UserID, maxHistory); err != nil {
		return fmt.Errorf("failed to trim history for user %s: %w", entry.UserID, err)
	}
	return nil
}

// GetHistory returns a user's history, newest first.
func GetHistory(db *sqlx.DB, userID string, limit int) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	query := "SELECT * FROM history WHERE user_id = ? ORDER BY id DESC LIMIT ?"
	if err := db.Select(&entries, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get history for user %s: %w", userID, err)
	}
	return entries, nil
}
