package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/moderation"
)

// Gateway adapts a discordgo session to the moderation engine's platform
// contract. Rank lookups go through REST every time so hierarchy checks see
// current role positions rather than cached state.
type Gateway struct {
	s *discordgo.Session
}

func NewGateway(s *discordgo.Session) *Gateway {
	return &Gateway{s: s}
}

func (g *Gateway) Member(guildID, userID string) (*moderation.Member, error) {
	m, err := g.s.GuildMember(guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s in guild %s: %w", userID, guildID, err)
	}
	return &moderation.Member{
		GuildID: guildID,
		UserID:  userID,
		Tag:     m.User.Username,
		RoleIDs: m.Roles,
	}, nil
}

func (g *Gateway) BotRank(guildID string) (moderation.Rank, error) {
	me, err := g.s.GuildMember(guildID, g.s.State.User.ID)
	if err != nil {
		return moderation.Rank{}, fmt.Errorf("failed to fetch bot member in guild %s: %w", guildID, err)
	}

	roles, err := g.s.GuildRoles(guildID)
	if err != nil {
		return moderation.Rank{}, fmt.Errorf("failed to fetch roles for guild %s: %w", guildID, err)
	}

	byID := make(map[string]*discordgo.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}

	var perms int64
	top := 0
	if everyone, ok := byID[guildID]; ok {
		perms |= everyone.Permissions
	}
	for _, id := range me.Roles {
		r, ok := byID[id]
		if !ok {
			continue
		}
		perms |= r.Permissions
		if r.Position > top {
			top = r.Position
		}
	}

	manage := perms&(discordgo.PermissionManageRoles|discordgo.PermissionAdministrator) != 0
	return moderation.Rank{ManageRoles: manage, TopPosition: top}, nil
}

func (g *Gateway) RolePosition(guildID, roleID string) (int, error) {
	roles, err := g.s.GuildRoles(guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch roles for guild %s: %w", guildID, err)
	}
	for _, r := range roles {
		if r.ID == roleID {
			return r.Position, nil
		}
	}
	return 0, fmt.Errorf("role %s not found in guild %s", roleID, guildID)
}

func (g *Gateway) MemberTopPosition(guildID, userID string) (int, error) {
	m, err := g.s.GuildMember(guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch member %s in guild %s: %w", userID, guildID, err)
	}
	roles, err := g.s.GuildRoles(guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch roles for guild %s: %w", guildID, err)
	}

	top := 0
	for _, r := range roles {
		for _, id := range m.Roles {
			if r.ID == id && r.Position > top {
				top = r.Position
			}
		}
	}
	return top, nil
}

func (g *Gateway) SetMemberRoles(guildID, userID string, roleIDs []string) error {
	_, err := g.s.GuildMemberEdit(guildID, userID, &discordgo.GuildMemberParams{Roles: &roleIDs})
	if err != nil {
		return fmt.Errorf("failed to set roles for member %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (g *Gateway) AddMemberRole(guildID, userID, roleID string) error {
	if err := g.s.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to add role %s to member %s: %w", roleID, userID, err)
	}
	return nil
}

func (g *Gateway) TimeoutMember(guildID, userID string, until *time.Time, reason string) error {
	var opts []discordgo.RequestOption
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	if err := g.s.GuildMemberTimeout(guildID, userID, until, opts...); err != nil {
		return fmt.Errorf("failed to timeout member %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (g *Gateway) GuildIDs() []string {
	ids := make([]string, 0, len(g.s.State.Guilds))
	for _, guild := range g.s.State.Guilds {
		ids = append(ids, guild.ID)
	}
	return ids
}

// MemberPermissions returns the union of a member's role permissions,
// including the guild's base role. Used by the staff predicate.
func (g *Gateway) MemberPermissions(guildID string, roleIDs []string) (int64, error) {
	roles, err := g.s.GuildRoles(guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch roles for guild %s: %w", guildID, err)
	}

	var perms int64
	for _, r := range roles {
		if r.ID == guildID {
			perms |= r.Permissions
			continue
		}
		for _, id := range roleIDs {
			if r.ID == id {
				perms |= r.Permissions
			}
		}
	}
	return perms, nil
}
