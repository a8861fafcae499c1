package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// EnsureGuildConfig returns the config for a guild, creating it with the
// given defaults on first reference.
func EnsureGuildConfig(db *sqlx.DB, guildID string, levelingDefault, inviteTrackingDefault bool) (*model.GuildConfig, error) {
	var cfg model.GuildConfig
	err := db.Get(&cfg, "SELECT * FROM guild_config WHERE guild_id = ?", guildID)
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get guild config for %s: %w", guildID, err)
	}

	cfg = model.GuildConfig{
		GuildID:               guildID,
		LevelingEnabled:       levelingDefault,
		InviteTrackingEnabled: inviteTrackingDefault,
	}
	query := `INSERT INTO guild_config (guild_id, raid_mode, raid_mode_until, chatbot_enabled, leveling_enabled, invite_tracking_enabled)
              VALUES (:guild_id, :raid_mode, :raid_mode_until, :chatbot_enabled, :leveling_enabled, :invite_tracking_enabled)
              ON CONFLICT(guild_id) DO NOTHING`
	if _, err := db.NamedExec(query, cfg); err != nil {
		return nil, fmt.Errorf("failed to create guild config for %s: %w", guildID, err)
	}
	return &cfg, nil
}

// UpdateGuildConfig replaces a guild's config row.
func UpdateGuildConfig(db *sqlx.DB, cfg model.GuildConfig) error {
	query := `UPDATE guild_config SET
                raid_mode = :raid_mode,
                raid_mode_until = :raid_mode_until,
                chatbot_enabled = :chatbot_enabled,
                leveling_enabled = :leveling_enabled,
                invite_tracking_enabled = :invite_tracking_enabled
              WHERE guild_id = :guild_id`
	if _, err := db.NamedExec(query, cfg); err != nil {
		return fmt.Errorf("failed to update guild config for %s: %w", cfg.GuildID, err)
	}
	return nil
}

// GetRaidModeGuilds returns all guilds currently in raid mode.
func GetRaidModeGuilds(db *sqlx.DB) ([]model.GuildConfig, error) {
	var cfgs []model.GuildConfig
	if err := db.Select(&cfgs, "SELECT * FROM guild_config WHERE raid_mode = 1"); err != nil {
		return nil, fmt.Errorf("failed to get raid mode guilds: %w", err)
	}
	return cfgs, nil
}
