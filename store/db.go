package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schemas = []string{
	`CREATE TABLE IF NOT EXISTS suspensions (
        user_id TEXT PRIMARY KEY,
        until_ts INTEGER NOT NULL DEFAULT 0,
        reason TEXT NOT NULL,
        actor TEXT NOT NULL,
        saved_at INTEGER NOT NULL,
        case_id INTEGER NOT NULL DEFAULT 0
    );`,
	`CREATE TABLE IF NOT EXISTS role_snapshots (
        user_id TEXT PRIMARY KEY,
        guild_id TEXT NOT NULL,
        roles TEXT NOT NULL,
        saved_at INTEGER NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS warnings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id TEXT NOT NULL,
        reason TEXT NOT NULL,
        at INTEGER NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id TEXT NOT NULL,
        type TEXT NOT NULL,
        reason TEXT NOT NULL,
        actor TEXT NOT NULL,
        at INTEGER NOT NULL,
        case_id INTEGER NOT NULL DEFAULT 0
    );`,
	`CREATE TABLE IF NOT EXISTS cases (
        case_id INTEGER PRIMARY KEY AUTOINCREMENT,
        type TEXT NOT NULL,
        user_id TEXT NOT NULL,
        user_tag TEXT NOT NULL,
        actor TEXT NOT NULL,
        reason TEXT NOT NULL,
        created_at INTEGER NOT NULL,
        status TEXT NOT NULL,
        closed_at INTEGER NOT NULL DEFAULT 0,
        closed_by TEXT NOT NULL DEFAULT '',
        note TEXT NOT NULL DEFAULT '',
        duration_ms INTEGER NOT NULL DEFAULT 0
    );`,
	`CREATE TABLE IF NOT EXISTS guild_config (
        guild_id TEXT PRIMARY KEY,
        raid_mode INTEGER NOT NULL DEFAULT 0,
        raid_mode_until INTEGER NOT NULL DEFAULT 0,
        chatbot_enabled INTEGER NOT NULL DEFAULT 0,
        leveling_enabled INTEGER NOT NULL DEFAULT 1,
        invite_tracking_enabled INTEGER NOT NULL DEFAULT 1
    );`,
	`CREATE TABLE IF NOT EXISTS afk (
        user_id TEXT PRIMARY KEY,
        reason TEXT NOT NULL,
        since INTEGER NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS levels (
        guild_id TEXT NOT NULL,
        user_id TEXT NOT NULL,
        xp INTEGER NOT NULL DEFAULT 0,
        level INTEGER NOT NULL DEFAULT 1,
        last_xp_at INTEGER NOT NULL DEFAULT 0,
        PRIMARY KEY (guild_id, user_id)
    );`,
	`CREATE TABLE IF NOT EXISTS invite_snapshots (
        guild_id TEXT NOT NULL,
        code TEXT NOT NULL,
        uses INTEGER NOT NULL DEFAULT 0,
        PRIMARY KEY (guild_id, code)
    );`,
	`CREATE TABLE IF NOT EXISTS invite_counts (
        guild_id TEXT NOT NULL,
        inviter_id TEXT NOT NULL,
        count INTEGER NOT NULL DEFAULT 0,
        PRIMARY KEY (guild_id, inviter_id)
    );`,
	`CREATE TABLE IF NOT EXISTS evidence (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        guild_id TEXT NOT NULL,
        message_id TEXT NOT NULL,
        channel_id TEXT NOT NULL,
        author_id TEXT NOT NULL,
        author_tag TEXT NOT NULL,
        content TEXT NOT NULL,
        created_at INTEGER NOT NULL,
        deleted_at INTEGER NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS custom_commands (
        guild_id TEXT NOT NULL,
        name TEXT NOT NULL,
        response TEXT NOT NULL,
        owner_only INTEGER NOT NULL DEFAULT 0,
        staff_only INTEGER NOT NULL DEFAULT 0,
        PRIMARY KEY (guild_id, name)
    );`,
}

// Init opens the record store and ensures all tables exist.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to record store: %w", err)
	}

	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create record store tables: %w", err)
		}
	}

	// Case numbering continues from the ledger the bot migrated from, which
	// started counting at 1000.
	seed := `INSERT INTO sqlite_sequence (name, seq)
             SELECT 'cases', 1000
             WHERE NOT EXISTS (SELECT 1 FROM sqlite_sequence WHERE name = 'cases')`
	if _, err := db.Exec(seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed case counter: %w", err)
	}

	return db, nil
}
