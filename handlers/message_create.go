package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/automod"
	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/moderation"
	"warden-bot/store"
	"warden-bot/utils"
)

func onMessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	commands := commandHandlers()
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || m.GuildID == "" {
			return
		}

		gc, err := store.EnsureGuildConfig(b.DB, m.GuildID,
			b.Config.Automod.LevelingEnabledDefault,
			b.Config.Automod.InviteTrackingEnabledDefault)
		if err != nil {
			log.Printf("Failed to load config for guild %s: %v", m.GuildID, err)
			return
		}

		handleAfkActivity(b, s, m)

		if gc.LevelingEnabled {
			awardXP(b, s, m)
		}

		var roles []string
		if m.Member != nil {
			roles = m.Member.Roles
		}
		staff := isStaff(b, m.GuildID, m.Author.ID, roles)

		if !staff {
			msg := automod.Message{
				GuildID:   m.GuildID,
				ChannelID: m.ChannelID,
				MessageID: m.ID,
				AuthorID:  m.Author.ID,
				AuthorTag: m.Author.Username,
				Content:   m.Content,
				Mentions:  len(m.Mentions) + len(m.MentionRoles),
			}
			if inf := b.Detector.Check(msg, time.Now()); inf != nil {
				enforceInfraction(b, s, m, inf)
				return
			}
		}

		if strings.HasPrefix(m.Content, commandPrefix) {
			dispatchCommand(b, s, m, commands)
			return
		}

		if gc.ChatbotEnabled && wantsChatbot(s, m) {
			if answer := chatbotReply(m.Content); answer != "" {
				reply(s, m.ChannelID, answer)
			}
			return
		}
	}
}

func dispatchCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, commands map[string]commandFunc) {
	fields := strings.Fields(strings.TrimPrefix(m.Content, commandPrefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	if h, ok := commands[name]; ok {
		h(b, s, m, args)
		return
	}
	runCustomCommand(b, s, m, name)
}

func runCustomCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, name string) {
	cmd, err := store.GetCustomCommand(b.DB, m.GuildID, name)
	if err != nil {
		log.Printf("Failed to look up custom command %q: %v", name, err)
		return
	}
	if cmd == nil {
		return
	}
	if cmd.OwnerOnly && m.Author.ID != b.Config.OwnerUserID {
		return
	}
	if cmd.StaffOnly {
		var roles []string
		if m.Member != nil {
			roles = m.Member.Roles
		}
		if !isStaff(b, m.GuildID, m.Author.ID, roles) {
			return
		}
	}
	reply(s, m.ChannelID, strings.ReplaceAll(cmd.Response, "{user}", m.Author.Mention()))
}

// enforceInfraction deletes the offending message, records the warning and
// runs escalation. Every step past the warning is best effort; a failed
// escalation never loses the recorded infraction.
func enforceInfraction(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, inf *automod.Infraction) {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("Failed to delete message %s: %v", m.ID, err)
	}

	count, err := b.Engine.RecordWarning(m.Author.ID, inf.Reason)
	if err != nil {
		log.Printf("Failed to record automod warning for %s: %v", m.Author.ID, err)
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: m.Author.ID,
		Type:   model.HistoryAutomodWarn,
		Reason: inf.Reason,
		Actor:  "automod",
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record automod history for %s: %v", m.Author.ID, err)
	}

	b.Log.LogWarn("⚠️ Automod: "+inf.Rule,
		fmt.Sprintf("%s triggered the %s rule.", m.Author.Username, inf.Rule),
		[2]string{"Reason", inf.Reason},
		[2]string{"Warnings", fmt.Sprintf("%d", count)},
		[2]string{"Channel", "<#" + m.ChannelID + ">"})

	var roles []string
	if m.Member != nil {
		roles = m.Member.Roles
	}
	member := &moderation.Member{
		GuildID: m.GuildID,
		UserID:  m.Author.ID,
		Tag:     m.Author.Username,
		RoleIDs: roles,
	}
	if err := b.Engine.Escalate(member, count); err != nil {
		log.Printf("Failed to escalate for %s: %v", m.Author.ID, err)
		b.Log.LogError("Escalation failed",
			fmt.Sprintf("Could not escalate %s: %v", m.Author.Username, err))
	}
}

// handleAfkActivity clears the author's own AFK mark and answers mentions of
// away users.
func handleAfkActivity(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) {
	if strings.HasPrefix(m.Content, commandPrefix+"afk") || strings.HasPrefix(m.Content, commandPrefix+"back") {
		return
	}

	rec, err := store.GetAfk(b.DB, m.Author.ID)
	if err != nil {
		log.Printf("Failed to check AFK state for %s: %v", m.Author.ID, err)
	} else if rec != nil {
		if err := store.ClearAfk(b.DB, m.Author.ID); err != nil {
			log.Printf("Failed to clear AFK state for %s: %v", m.Author.ID, err)
		} else {
			reply(s, m.ChannelID, fmt.Sprintf("Welcome back, %s. Your AFK status has been cleared.", m.Author.Username))
		}
	}

	for _, u := range m.Mentions {
		if u.ID == m.Author.ID {
			continue
		}
		rec, err := store.GetAfk(b.DB, u.ID)
		if err != nil || rec == nil {
			continue
		}
		reply(s, m.ChannelID, fmt.Sprintf("%s is AFK: %s (since <t:%d:R>)", u.Username, rec.Reason, rec.Since/1000))
	}
}

func awardXP(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) {
	cfg := b.Config.Automod
	rec, err := store.GetLevel(b.DB, m.GuildID, m.Author.ID)
	if err != nil {
		log.Printf("Failed to load level record for %s: %v", m.Author.ID, err)
		return
	}

	now := time.Now().UnixMilli()
	if now-rec.LastXPAt < cfg.XPCooldownMs {
		return
	}

	rec.XP += utils.RandRange(cfg.XPPerMessageMin, cfg.XPPerMessageMax)
	rec.LastXPAt = now

	leveled := false
	for rec.XP >= utils.XPForLevel(rec.Level+1) {
		rec.Level++
		leveled = true
	}

	if err := store.SaveLevel(b.DB, *rec); err != nil {
		log.Printf("Failed to save level record for %s: %v", m.Author.ID, err)
		return
	}
	if leveled && cfg.LevelUpAnnounce {
		reply(s, m.ChannelID, fmt.Sprintf("🎉 %s reached level %d!", m.Author.Username, rec.Level))
	}
}
