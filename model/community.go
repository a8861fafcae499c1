package model

// GuildConfig holds per-guild toggles and raid-mode state. Created lazily
// with defaults on first reference.
type GuildConfig struct {
	GuildID               string `db:"guild_id"` // Primary Key
	RaidMode              bool   `db:"raid_mode"`
	RaidModeUntil         int64  `db:"raid_mode_until"`
	ChatbotEnabled        bool   `db:"chatbot_enabled"`
	LevelingEnabled       bool   `db:"leveling_enabled"`
	InviteTrackingEnabled bool   `db:"invite_tracking_enabled"`
}

// AfkRecord marks a user as away.
type AfkRecord struct {
	UserID string `db:"user_id"` // Primary Key
	Reason string `db:"reason"`
	Since  int64  `db:"since"`
}

// LevelRecord tracks message XP per user per guild.
type LevelRecord struct {
	GuildID  string `db:"guild_id"`
	UserID   string `db:"user_id"`
	XP       int64  `db:"xp"`
	Level    int64  `db:"level"`
	LastXPAt int64  `db:"last_xp_at"`
}

// InviteSnapshot records the last seen use count for an invite code.
type InviteSnapshot struct {
	GuildID string `db:"guild_id"`
	Code    string `db:"code"`
	Uses    int    `db:"uses"`
}

// InviteCount is the number of tracked joins attributed to an inviter.
type InviteCount struct {
	GuildID   string `db:"guild_id"`
	InviterID string `db:"inviter_id"`
	Count     int    `db:"count"`
}

// EvidenceRecord archives the content of a deleted message.
type EvidenceRecord struct {
	ID        int64  `db:"id"` // Primary Key, Auto-increment
	GuildID   string `db:"guild_id"`
	MessageID string `db:"message_id"`
	ChannelID string `db:"channel_id"`
	AuthorID  string `db:"author_id"`
	AuthorTag string `db:"author_tag"`
	Content   string `db:"content"`
	CreatedAt int64  `db:"created_at"`
	DeletedAt int64  `db:"deleted_at"`
}

// CustomCommand is a guild-defined text response command.
type CustomCommand struct {
	GuildID   string `db:"guild_id"`
	Name      string `db:"name"`
	Response  string `db:"response"`
	OwnerOnly bool   `db:"owner_only"`
	StaffOnly bool   `db:"staff_only"`
}
