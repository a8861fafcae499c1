package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// maxWarnings bounds the per-user warning log; the oldest entries are
// evicted first.
const maxWarnings = 100

// AddWarning appends a warning to a user's log and returns the resulting
// total count.
func AddWarning(db *sqlx.DB, userID, reason string, at int64) (int, error) {
	rec := model.WarningRecord{UserID: userID, Reason: reason, At: at}
	query := `INSERT INTO warnings (user_id, reason, at) VALUES (:user_id, :reason, :at)`
	if _, err := db.NamedExec(query, rec); err != nil {
		return 0, fmt.Errorf("failed to insert warning for user %s: %w", userID, err)
	}

	evict := `DELETE FROM warnings WHERE user_id = ? AND id NOT IN (
                SELECT id FROM warnings WHERE user_id = ? ORDER BY id DESC LIMIT ?)`
	if _, err := db.Exec(evict, userID, userID, maxWarnings); err != nil {
		return 0, fmt.Errorf("failed to trim warnings for user %s: %w", userID, err)
	}

	return CountWarnings(db, userID)
}

// CountWarnings returns the number of retained warnings for a user.
func CountWarnings(db *sqlx.DB, userID string) (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM warnings WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("failed to count warnings for user %s: %w", userID, err)
	}
	return count, nil
}

// GetWarnings returns a user's warnings, newest first.
func GetWarnings(db *sqlx.DB, userID string, limit int) ([]model.WarningRecord, error) {
	var recs []model.WarningRecord
	query := "SELECT * FROM warnings WHERE user_id = ? ORDER BY id DESC LIMIT ?"
	if err := db.Select(&recs, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get warnings for user %s: %w", userID, err)
	}
	return recs, nil
}

// ClearWarnings resets a user's warning log to empty.
func ClearWarnings(db *sqlx.DB, userID string) error {
	if _, err := db.Exec("DELETE FROM warnings WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to clear warnings for user %s: %w", userID, err)
	}
	return nil
}
