package model

// Case statuses.
const (
	CaseOpen   = "open"
	CaseClosed = "closed"
)

// CaseRecord is an audit record correlating a moderation action with a
// monotonically increasing case ID. Immutable except for the open->closed
// transition.
type CaseRecord struct {
	CaseID     int64  `db:"case_id"` // Primary Key, Auto-increment
	Type       string `db:"type"`
	UserID     string `db:"user_id"`
	UserTag    string `db:"user_tag"`
	Actor      string `db:"actor"`
	Reason     string `db:"reason"`
	CreatedAt  int64  `db:"created_at"`
	Status     string `db:"status"`
	ClosedAt   int64  `db:"closed_at"`
	ClosedBy   string `db:"closed_by"`
	Note       string `db:"note"`
	DurationMs int64  `db:"duration_ms"`
}
