package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// SetChannelSendLock toggles the base role's send permission on a channel.
// Unlocking neutralizes the overwrite rather than deleting it, so unrelated
// overwrite bits survive.
func (g *Gateway) SetChannelSendLock(channelID, guildID string, locked bool) error {
	var deny int64
	if locked {
		deny = discordgo.PermissionSendMessages
	}
	if err := g.s.ChannelPermissionSet(channelID, guildID, discordgo.PermissionOverwriteTypeRole, 0, deny); err != nil {
		return fmt.Errorf("failed to update send lock on channel %s: %w", channelID, err)
	}
	return nil
}

// SetGuildSendLock applies or lifts the send lock on every text channel in
// the guild. Per-channel failures are logged and skipped.
func (g *Gateway) SetGuildSendLock(guildID string, locked bool) {
	channels, err := g.s.GuildChannels(guildID)
	if err != nil {
		log.Printf("Failed to list channels for guild %s: %v", guildID, err)
		return
	}
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if err := g.SetChannelSendLock(ch.ID, guildID, locked); err != nil {
			log.Printf("Failed to update send lock on #%s: %v", ch.Name, err)
		}
	}
}

// SetSlowmode sets the per-user message rate limit on a channel, in seconds.
func (g *Gateway) SetSlowmode(channelID string, seconds int) error {
	_, err := g.s.ChannelEdit(channelID, &discordgo.ChannelEdit{RateLimitPerUser: &seconds})
	if err != nil {
		return fmt.Errorf("failed to set slowmode on channel %s: %w", channelID, err)
	}
	return nil
}

// CreateCourtChannel creates a private hearing channel visible to the subject
// and staff only, under the configured category.
func (g *Gateway) CreateCourtChannel(guildID, categoryID, name, userID, staffRoleID string) (*discordgo.Channel, error) {
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    userID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		},
	}
	if staffRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    staffRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		})
	}

	ch, err := g.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             categoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create court channel %s: %w", name, err)
	}
	return ch, nil
}

// GuildInviteUses returns the current use count per invite code for a guild.
func (g *Gateway) GuildInviteUses(guildID string) (map[string]int, error) {
	invites, err := g.s.GuildInvites(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invites for guild %s: %w", guildID, err)
	}
	uses := make(map[string]int, len(invites))
	for _, inv := range invites {
		uses[inv.Code] = inv.Uses
	}
	return uses, nil
}
