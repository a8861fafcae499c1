package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// GetLevel returns a user's level record, or a fresh level-1 record if none
// exists yet.
func GetLevel(db *sqlx.DB, guildID, userID string) (*model.LevelRecord, error) {
	var rec model.LevelRecord
	err := db.Get(&rec, "SELECT * FROM levels WHERE guild_id = ? AND user_id = ?", guildID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.LevelRecord{GuildID: guildID, UserID: userID, Level: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level for user %s in guild %s: %w", userID, guildID, err)
	}
	return &rec, nil
}

// SaveLevel writes a user's level record.
func SaveLevel(db *sqlx.DB, rec model.LevelRecord) error {
	query := `INSERT INTO levels (guild_id, user_id, xp, level, last_xp_at)
              VALUES (:guild_id, :user_id, :xp, :level, :last_xp_at)
              ON CONFLICT(guild_id, user_id) DO UPDATE SET
                xp = excluded.xp, level = excluded.level, last_xp_at = excluded.last_xp_at`
	if _, err := db.NamedExec(query, rec); err != nil {
		return fmt.Errorf("failed to save level for user %s in guild %s: %w", rec.UserID, rec.GuildID, err)
	}
	return nil
}

// GetTopLevels returns a guild's leaderboard ordered by level then XP.
func GetTopLevels(db *sqlx.DB, guildID string, limit int) ([]model.LevelRecord, error) {
	var recs []model.LevelRecord
	query := "SELECT * FROM levels WHERE guild_id = ? ORDER BY level DESC, xp DESC LIMIT ?"
	if err := db.Select(&recs, query, guildID, limit); err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for guild %s: %w", guildID, err)
	}
	return recs, nil
}

// GetLevelRank returns a user's 1-based leaderboard position, or 0 if the
// user has no level record.
func GetLevelRank(db *sqlx.DB, guildID, userID string) (int, error) {
	var exists int
	if err := db.Get(&exists, "SELECT COUNT(*) FROM levels WHERE guild_id = ? AND user_id = ?", guildID, userID); err != nil {
		return 0, fmt.Errorf("failed to check level record for user %s in guild %s: %w", userID, guildID, err)
	}
	if exists == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) + 1 FROM levels l
              WHERE l.guild_id = ? AND (l.level > (SELECT level FROM levels WHERE guild_id = ? AND user_id = ?)
                OR (l.level = (SELECT level FROM levels WHERE guild_id = ? AND user_id = ?)
                    AND l.xp > (SELECT xp FROM levels WHERE guild_id = ? AND user_id = ?)))`
	var rank int
	err := db.Get(&rank, query, guildID, guildID, userID, guildID, userID, guildID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get rank for user %s in guild %s: %w", userID, guildID, err)
	}
	return rank, nil
}
