package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"warden-bot/model"
)

const maxEvidencePerGuild = 2000

// AddEvidence archives a deleted message, evicting the oldest entries past
// the per-guild cap.
func AddEvidence(db *sqlx.DB, rec model.EvidenceRecord) error {
	query := `INSERT INTO evidence (guild_id, message_id, channel_id, author_id, author_tag, content, created_at, deleted_at)
              VALUES (:guild_id, :message_id, :channel_id, :author_id, :author_tag, :content, :created_at, :deleted_at)`
	if _, err := db.NamedExec(query, rec); err != nil {
		return fmt.Errorf("failed to insert evidence for guild %s: %w", rec.GuildID, err)
	}

	evict := `DELETE FROM evidence WHERE guild_id = ? AND id NOT IN (
                SELECT id FROM evidence WHERE guild_id = ? ORDER BY id DESC LIMIT ?)`
	if _, err := db.Exec(evict, rec.GuildID, rec.GuildID, maxEvidencePerGuild); err != nil {
		return fmt.Errorf("failed to trim evidence for guild %s: %w", rec.GuildID, err)
	}
	return nil
}

// GetEvidence returns recently archived deletions for a guild, newest first,
// optionally filtered by author.
func GetEvidence(db *sqlx.DB, guildID, authorID string, limit int) ([]model.EvidenceRecord, error) {
	var recs []model.EvidenceRecord
	var err error
	if authorID != "" {
		query := "SELECT * FROM evidence WHERE guild_id = ? AND author_id = ? ORDER BY id DESC LIMIT ?"
		err = db.Select(&recs, query, guildID, authorID, limit)
	} else {
		query := "SELECT * FROM evidence WHERE guild_id = ? ORDER BY id DESC LIMIT ?"
		err = db.Select(&recs, query, guildID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence for guild %s: %w", guildID, err)
	}
	return recs, nil
}
