package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// AddCase writes a new case record and returns its ID. IDs are allocated by
// the store and are strictly increasing.
func AddCase(db *sqlx.DB, rec model.CaseRecord) (int64, error) {
	query := `INSERT INTO cases (type, user_id, user_tag, actor, reason, created_at, status, closed_at, closed_by, note, duration_ms)
              VALUES (:type, :user_id, :user_tag, :actor, :reason, :created_at, :status, :closed_at, :closed_by, :note, :duration_ms)`
	result, err := db.NamedExec(query, rec)
	if err != nil {
		return 0, fmt.Errorf("failed to insert case record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last case ID: %w", err)
	}
	return id, nil
}

// GetCase returns a case by ID, or nil if the ID is unknown.
func GetCase(db *sqlx.DB, caseID int64) (*model.CaseRecord, error) {
	var rec model.CaseRecord
	err := db.Get(&rec, "SELECT * FROM cases WHERE case_id = ?", caseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case %d: %w", caseID, err)
	}
	return &rec, nil
}

// CloseCase performs the open->closed transition. Returns false if the case
// does not exist or is already closed.
func CloseCase(db *sqlx.DB, caseID int64, closedBy, note string, closedAt int64) (bool, error) {
	query := `UPDATE cases SET status = ?, closed_at = ?, closed_by = ?, note = ? WHERE case_id = ? AND status = ?`
	result, err := db.Exec(query, model.CaseClosed, closedAt, closedBy, note, caseID, model.CaseOpen)
	if err != nil {
		return false, fmt.Errorf("failed to close case %d: %w", caseID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for case %d: %w", caseID, err)
	}
	return affected > 0, nil
}
