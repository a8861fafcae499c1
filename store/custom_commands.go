package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

// SetCustomCommand creates or replaces a guild text command.
func SetCustomCommand(db *sqlx.DB, cmd model.CustomCommand) error {
	query := `INSERT INTO custom_commands (guild_id, name, response, owner_only, staff_only)
              VALUES (:guild_id, :name, :response, :owner_only, :staff_only)
              ON CONFLICT(guild_id, name) DO UPDATE SET
                response = excluded.response,
                owner_only = excluded.owner_only,
                staff_only = excluded.staff_only`
	if _, err := db.NamedExec(query, cmd); err != nil {
		return fmt.Errorf("failed to set custom command %s in guild %s: %w", cmd.Name, cmd.GuildID, err)
	}
	return nil
}

// GetCustomCommand returns a guild text command, or nil if it does not
// exist.
func GetCustomCommand(db *sqlx.DB, guildID, name string) (*model.CustomCommand, error) {
	var cmd model.CustomCommand
	err := db.Get(&cmd, "SELECT * FROM custom_commands WHERE guild_id = ? AND name = ?", guildID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom command %s in guild %s: %w", name, guildID, err)
	}
	return &cmd, nil
}

// DeleteCustomCommand removes a guild text command. Returns false if it did
// not exist.
func DeleteCustomCommand(db *sqlx.DB, guildID, name string) (bool, error) {
	result, err := db.Exec("DELETE FROM custom_commands WHERE guild_id = ? AND name = ?", guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete custom command %s in guild %s: %w", name, guildID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for custom command %s: %w", name, err)
	}
	return affected > 0, nil
}

// ListCustomCommands returns all text commands for a guild sorted by name.
func ListCustomCommands(db *sqlx.DB, guildID string) ([]model.CustomCommand, error) {
	var cmds []model.CustomCommand
	query := "SELECT * FROM custom_commands WHERE guild_id = ? ORDER BY name"
	if err := db.Select(&cmds, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to list custom commands for guild %s: %w", guildID, err)
	}
	return cmds, nil
}
