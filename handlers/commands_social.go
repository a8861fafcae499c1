package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/store"
	"warden-bot/utils"
)

func handleAfk(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	reason := "AFK"
	if len(args) > 0 {
		reason = strings.Join(args, " ")
	}
	if err := store.SetAfk(b.DB, model.AfkRecord{
		UserID: m.Author.ID,
		Reason: reason,
		Since:  time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to set AFK for %s: %v", m.Author.ID, err)
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("💤 %s is now AFK: %s", m.Author.Username, reason))
}

func handleBack(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if err := store.ClearAfk(b.DB, m.Author.ID); err != nil {
		log.Printf("Failed to clear AFK for %s: %v", m.Author.ID, err)
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("Welcome back, %s.", m.Author.Username))
}

func handleRank(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	userID := m.Author.ID
	if len(args) > 0 {
		if id := parseUserArg(args[0]); id != "" {
			userID = id
		}
	}

	rec, err := store.GetLevel(b.DB, m.GuildID, userID)
	if err != nil {
		log.Printf("Failed to load level record: %v", err)
		return
	}
	rank, err := store.GetLevelRank(b.DB, m.GuildID, userID)
	if err != nil {
		log.Printf("Failed to load level rank: %v", err)
		rank = 0
	}

	next := utils.XPForLevel(rec.Level + 1)
	msg := fmt.Sprintf("<@%s> is level %d with %d XP (%d to next level)", userID, rec.Level, rec.XP, next-rec.XP)
	if rank > 0 {
		msg += fmt.Sprintf(", rank #%d", rank)
	}
	reply(s, m.ChannelID, msg+".")
}

func handleLeaderboard(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	recs, err := store.GetTopLevels(b.DB, m.GuildID, 10)
	if err != nil {
		log.Printf("Failed to load leaderboard: %v", err)
		return
	}
	if len(recs) == 0 {
		reply(s, m.ChannelID, "Nobody has earned XP yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 **Leaderboard**\n")
	for i, r := range recs {
		fmt.Fprintf(&sb, "%d. <@%s> — level %d (%d XP)\n", i+1, r.UserID, r.Level, r.XP)
	}
	reply(s, m.ChannelID, sb.String())
}

func handleInvites(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	userID := m.Author.ID
	if len(args) > 0 {
		if id := parseUserArg(args[0]); id != "" {
			userID = id
		}
	}
	count, err := store.GetInviteCount(b.DB, m.GuildID, userID)
	if err != nil {
		log.Printf("Failed to load invite count: %v", err)
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("<@%s> has brought %d members here.", userID, count))
}

func toggleGuildFlag(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string, name string, set func(*model.GuildConfig, bool)) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		reply(s, m.ChannelID, fmt.Sprintf("Usage: ?%s on|off", name))
		return
	}

	gc, err := store.EnsureGuildConfig(b.DB, m.GuildID,
		b.Config.Automod.LevelingEnabledDefault,
		b.Config.Automod.InviteTrackingEnabledDefault)
	if err != nil {
		log.Printf("Failed to load config for guild %s: %v", m.GuildID, err)
		return
	}
	set(gc, args[0] == "on")
	if err := store.UpdateGuildConfig(b.DB, *gc); err != nil {
		log.Printf("Failed to update guild config: %v", err)
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("%s is now %s.", name, args[0]))
}

func handleChatbotToggle(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	toggleGuildFlag(b, s, m, args, "chatbot", func(gc *model.GuildConfig, on bool) { gc.ChatbotEnabled = on })
}

func handleLevelingToggle(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	toggleGuildFlag(b, s, m, args, "leveling", func(gc *model.GuildConfig, on bool) { gc.LevelingEnabled = on })
}

func handleInviteTrackerToggle(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	toggleGuildFlag(b, s, m, args, "invitetracker", func(gc *model.GuildConfig, on bool) { gc.InviteTrackingEnabled = on })
}

func addCustomCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string, ownerOnly, staffOnly bool) {
	if ownerOnly {
		if !requireOwner(b, s, m) {
			return
		}
	} else if !requireStaff(b, s, m) {
		return
	}
	if len(args) < 2 {
		reply(s, m.ChannelID, "Usage: ?addcmd <name> <response>")
		return
	}
	name := strings.ToLower(args[0])
	if _, reserved := commandHandlers()[name]; reserved {
		reply(s, m.ChannelID, "That name is reserved.")
		return
	}

	if err := store.SetCustomCommand(b.DB, model.CustomCommand{
		GuildID:   m.GuildID,
		Name:      name,
		Response:  strings.Join(args[1:], " "),
		OwnerOnly: ownerOnly,
		StaffOnly: staffOnly,
	}); err != nil {
		log.Printf("Failed to save custom command %q: %v", name, err)
		reply(s, m.ChannelID, "Could not save that command.")
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("Command `%s%s` saved.", commandPrefix, name))
}

func handleAddCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	addCustomCommand(b, s, m, args, false, false)
}

func handleAddCommandStaff(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	addCustomCommand(b, s, m, args, false, true)
}

func handleAddCommandOwner(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	addCustomCommand(b, s, m, args, true, false)
}

func handleDelCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?delcmd <name>")
		return
	}
	name := strings.ToLower(args[0])
	deleted, err := store.DeleteCustomCommand(b.DB, m.GuildID, name)
	if err != nil {
		log.Printf("Failed to delete custom command %q: %v", name, err)
		return
	}
	if !deleted {
		reply(s, m.ChannelID, "No such command.")
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("Command `%s%s` deleted.", commandPrefix, name))
}

func handleListCommands(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	cmds, err := store.ListCustomCommands(b.DB, m.GuildID)
	if err != nil {
		log.Printf("Failed to list custom commands: %v", err)
		return
	}
	if len(cmds) == 0 {
		reply(s, m.ChannelID, "No custom commands defined.")
		return
	}
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, commandPrefix+c.Name)
	}
	reply(s, m.ChannelID, "Custom commands: "+strings.Join(names, ", "))
}
