package moderation

import "time"

// Member is a platform-neutral view of a guild member. RoleIDs excludes the
// guild's implicit base role.
type Member struct {
	GuildID string
	UserID  string
	Tag     string
	RoleIDs []string
}

// Gateway is the slice of the chat platform the engine needs. Every
// operation may fail; the engine decides per call whether a failure blocks
// state writes or is logged and swallowed.
type Gateway interface {
	Member(guildID, userID string) (*Member, error)
	BotRank(guildID string) (Rank, error)
	RolePosition(guildID, roleID string) (int, error)
	MemberTopPosition(guildID, userID string) (int, error)

	SetMemberRoles(guildID, userID string, roleIDs []string) error
	AddMemberRole(guildID, userID, roleID string) error
	TimeoutMember(guildID, userID string, until *time.Time, reason string) error

	GuildIDs() []string
}

// Notice is an outward notification for the moderation log channel.
type Notice struct {
	Color       int
	Title       string
	Description string
	Fields      [][2]string
}

// NotifyFunc delivers notices. May be nil to disable notifications.
type NotifyFunc func(Notice)
