package handlers

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/store"
	"warden-bot/utils"
)

const commandPrefix = "?"

type commandFunc func(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// Register wires every gateway event handler onto the session.
func Register(b *bot.Bot) {
	b.Session.AddHandler(onReady(b))
	b.Session.AddHandler(onMessageCreate(b))
	b.Session.AddHandler(onMessageDelete(b))
	b.Session.AddHandler(onMessageUpdate(b))
	b.Session.AddHandler(onGuildMemberAdd(b))
	b.Session.AddHandler(onGuildMemberRemove(b))
	b.Session.AddHandler(onInviteCreate(b))
	b.Session.AddHandler(onInviteDelete(b))
}

func commandHandlers() map[string]commandFunc {
	return map[string]commandFunc{
		"banish":        handleBanish,
		"restore":       handleRestore,
		"partner":       handlePartner,
		"warn":          handleWarn,
		"warnings":      handleWarnings,
		"clearwarnings": handleClearWarnings,
		"timeout":       handleTimeout,
		"untimeout":     handleUntimeout,
		"kick":          handleKick,
		"ban":           handleBan,
		"purge":         handlePurge,
		"lock":          handleLock,
		"unlock":        handleUnlock,
		"lockdown":      handleLockdown,
		"unlockdown":    handleUnlockdown,
		"slowmode":      handleSlowmode,
		"raidmode":      handleRaidMode,
		"afk":           handleAfk,
		"back":          handleBack,
		"appeal":        handleAppeal,
		"history":       handleHistory,
		"case":          handleCase,
		"closecase":     handleCloseCase,
		"court":         handleCourt,
		"rank":          handleRank,
		"leaderboard":   handleLeaderboard,
		"invites":       handleInvites,
		"evidence":      handleEvidence,
		"chatbot":       handleChatbotToggle,
		"warden":        handleChatbotToggle,
		"leveling":      handleLevelingToggle,
		"invitetracker": handleInviteTrackerToggle,
		"addcmd":        handleAddCommand,
		"addcmd_staff":  handleAddCommandStaff,
		"addcmd_owner":  handleAddCommandOwner,
		"delcmd":        handleDelCommand,
		"cmds":          handleListCommands,
		"menu":          handleMenu,
		"help":          handleMenu,
		"ping":          handlePing,
		"status":        handleStatus,
		"say":           handleSay,
	}
}

func onReady(b *bot.Bot) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Ready with %d guilds", len(r.Guilds))
		for _, g := range r.Guilds {
			if _, err := store.EnsureGuildConfig(b.DB, g.ID,
				b.Config.Automod.LevelingEnabledDefault,
				b.Config.Automod.InviteTrackingEnabledDefault); err != nil {
				log.Printf("Failed to ensure config for guild %s: %v", g.ID, err)
			}
			refreshInviteSnapshot(b, g.ID)
		}
	}
}

// isStaff is the privileged-user predicate for command gating and automod
// exemption.
func isStaff(b *bot.Bot, guildID, userID string, roleIDs []string) bool {
	perms, err := b.Gateway.MemberPermissions(guildID, roleIDs)
	if err != nil {
		log.Printf("Failed to resolve permissions for %s: %v", userID, err)
		perms = 0
	}
	return utils.IsPrivileged(userID, roleIDs, perms, b.StaffPolicy())
}

func reply(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("Failed to send message to channel %s: %v", channelID, err)
	}
}

// parseUserArg resolves a command argument to a user ID. Accepts a raw
// mention or a bare snowflake.
func parseUserArg(arg string) string {
	arg = strings.TrimPrefix(arg, "<@")
	arg = strings.TrimPrefix(arg, "!")
	arg = strings.TrimSuffix(arg, ">")
	for _, r := range arg {
		if r < '0' || r > '9' {
			return ""
		}
	}
	if len(arg) < 15 {
		return ""
	}
	return arg
}

func requireStaff(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	var roles []string
	if m.Member != nil {
		roles = m.Member.Roles
	}
	if !isStaff(b, m.GuildID, m.Author.ID, roles) {
		reply(s, m.ChannelID, "You do not have permission to use this command.")
		return false
	}
	return true
}

func requireOwner(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.Author.ID != b.Config.OwnerUserID {
		reply(s, m.ChannelID, "Owner only.")
		return false
	}
	return true
}
