package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// GetInviteSnapshot returns the last seen use counts per invite code for a
// guild.
func GetInviteSnapshot(db *sqlx.DB, guildID string) (map[string]int, error) {
	var rows []model.InviteSnapshot
	if err := db.Select(&rows, "SELECT * FROM invite_snapshots WHERE guild_id = ?", guildID); err != nil {
		return nil, fmt.Errorf("failed to get invite snapshot for guild %s: %w", guildID, err)
	}
	snap := make(map[string]int, len(rows))
	for _, r := range rows {
		snap[r.Code] = r.Uses
	}
	return snap, nil
}

// ReplaceInviteSnapshot overwrites a guild's invite snapshot with the given
// code->uses map.
func ReplaceInviteSnapshot(db *sqlx.DB, guildID string, snap map[string]int) error {
	if _, err := db.Exec("DELETE FROM invite_snapshots WHERE guild_id = ?", guildID); err != nil {
		return fmt.Errorf("failed to clear invite snapshot for guild %s: %w", guildID, err)
	}
	for code, uses := range snap {
		rec := model.InviteSnapshot{GuildID: guildID, Code: code, Uses: uses}
		query := `INSERT INTO invite_snapshots (guild_id, code, uses) VALUES (:guild_id, :code, :uses)`
		if _, err := db.NamedExec(query, rec); err != nil {
			return fmt.Errorf("failed to write invite snapshot for guild %s: %w", guildID, err)
		}
	}
	return nil
}

// IncrementInviteCount credits a tracked join to an inviter.
func IncrementInviteCount(db *sqlx.DB, guildID, inviterID string) error {
	query := `INSERT INTO invite_counts (guild_id, inviter_id, count) VALUES (?, ?, 1)
              ON CONFLICT(guild_id, inviter_id) DO UPDATE SET count = count + 1`
	if _, err := db.Exec(query, guildID, inviterID); err != nil {
		return fmt.Errorf("failed to increment invite count for %s in guild %s: %w", inviterID, guildID, err)
	}
	return nil
}

// GetInviteCount returns the number of tracked joins attributed to an
// inviter.
func GetInviteCount(db *sqlx.DB, guildID, inviterID string) (int, error) {
	var count int
	query := "SELECT COALESCE(SUM(count), 0) FROM invite_counts WHERE guild_id = ? AND inviter_id = ?"
	if err := db.Get(&count, query, guildID, inviterID); err != nil {
		return 0, fmt.Errorf("failed to get invite count for %s in guild %s: %w", inviterID, guildID, err)
	}
	return count, nil
}
