package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/moderation"
	"warden-bot/store"
	"warden-bot/utils"
)

// targetMember resolves the first argument of a command to a live member.
func targetMember(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) *moderation.Member {
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: mention a user first.")
		return nil
	}
	userID := parseUserArg(args[0])
	if userID == "" {
		reply(s, m.ChannelID, "Could not parse that user.")
		return nil
	}
	member, err := b.Gateway.Member(m.GuildID, userID)
	if err != nil {
		reply(s, m.ChannelID, "Could not find that member in this server.")
		return nil
	}
	return member
}

func reasonFrom(args []string) string {
	if len(args) == 0 {
		return "No reason provided"
	}
	return strings.Join(args, " ")
}

func replyActionErr(s *discordgo.Session, channelID string, err error) {
	var hier *moderation.HierarchyError
	if errors.As(err, &hier) {
		reply(s, channelID, "I cannot act on that target: my role is not high enough.")
		return
	}
	reply(s, channelID, "That action failed: "+err.Error())
}

func handleBanish(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}
	rest := args[1:]

	var duration time.Duration
	if len(rest) > 0 {
		if d, err := utils.ParseDuration(rest[0]); err == nil {
			duration = d
			rest = rest[1:]
		}
	}
	reason := reasonFrom(rest)

	caseID, err := store.AddCase(b.DB, model.CaseRecord{
		Type:       "banish",
		UserID:     member.UserID,
		UserTag:    member.Tag,
		Actor:      m.Author.Username,
		Reason:     reason,
		CreatedAt:  time.Now().UnixMilli(),
		Status:     model.CaseOpen,
		DurationMs: duration.Milliseconds(),
	})
	if err != nil {
		log.Printf("Failed to open banish case: %v", err)
		reply(s, m.ChannelID, "Could not open a case for this action.")
		return
	}

	if err := b.Engine.Suspend(member, m.Author.Username, reason, duration, caseID); err != nil {
		replyActionErr(s, m.ChannelID, err)
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("🔨 %s has been banished (Case #%d).", member.Tag, caseID))
}

func handleRestore(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}
	reason := reasonFrom(args[1:])

	restored, err := b.Engine.Restore(member, m.Author.Username, reason, 0)
	if err != nil {
		replyActionErr(s, m.ChannelID, err)
		return
	}
	if !restored {
		reply(s, m.ChannelID, fmt.Sprintf("%s is not banished.", member.Tag))
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("🕊️ %s has been restored.", member.Tag))
}

func handlePartner(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if b.Config.PartnerRoleID == "" {
		reply(s, m.ChannelID, "No partner role is configured.")
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}

	if err := b.Gateway.AddMemberRole(m.GuildID, member.UserID, b.Config.PartnerRoleID); err != nil {
		replyActionErr(s, m.ChannelID, err)
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: member.UserID,
		Type:   model.HistoryPartner,
		Reason: "Granted partner role",
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record partner history: %v", err)
	}
	reply(s, m.ChannelID, fmt.Sprintf("🤝 %s is now a partner.", member.Tag))
}

func handleWarn(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}
	reason := reasonFrom(args[1:])

	count, err := b.Engine.RecordWarning(member.UserID, reason)
	if err != nil {
		log.Printf("Failed to record warning: %v", err)
		reply(s, m.ChannelID, "Could not record that warning.")
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: member.UserID,
		Type:   model.HistoryWarn,
		Reason: reason,
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record warn history: %v", err)
	}

	reply(s, m.ChannelID, fmt.Sprintf("⚠️ %s warned (%d total). Reason: %s", member.Tag, count, reason))
	if err := b.Engine.Escalate(member, count); err != nil {
		log.Printf("Failed to escalate for %s: %v", member.UserID, err)
		reply(s, m.ChannelID, "Escalation failed; the warning still counts.")
	}
}

func handleWarnings(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	userID := m.Author.ID
	name := m.Author.Username
	if len(args) > 0 {
		if id := parseUserArg(args[0]); id != "" {
			userID = id
			name = "<@" + id + ">"
		}
	}

	recs, err := store.GetWarnings(b.DB, userID, 10)
	if err != nil {
		log.Printf("Failed to load warnings: %v", err)
		return
	}
	if len(recs) == 0 {
		reply(s, m.ChannelID, fmt.Sprintf("%s has no warnings.", name))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Warnings for %s:\n", name)
	for i, w := range recs {
		fmt.Fprintf(&sb, "%d. %s (<t:%d:R>)\n", i+1, w.Reason, w.At/1000)
	}
	reply(s, m.ChannelID, sb.String())
}

func handleClearWarnings(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?clearwarnings @user")
		return
	}
	userID := parseUserArg(args[0])
	if userID == "" {
		reply(s, m.ChannelID, "Could not parse that user.")
		return
	}

	if err := b.Engine.ClearWarnings(userID); err != nil {
		log.Printf("Failed to clear warnings: %v", err)
		reply(s, m.ChannelID, "Could not clear warnings.")
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: userID,
		Type:   model.HistoryClearWarns,
		Reason: "Warnings cleared",
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record clearwarnings history: %v", err)
	}
	reply(s, m.ChannelID, "🧹 Warnings cleared.")
}

func handleTimeout(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}
	if len(args) < 2 {
		reply(s, m.ChannelID, "Usage: ?timeout @user <duration> [reason]")
		return
	}
	duration, err := utils.ParseDuration(args[1])
	if err != nil {
		reply(s, m.ChannelID, "Could not parse that duration. Try 10m, 2h or 1d.")
		return
	}
	reason := reasonFrom(args[2:])

	until := time.Now().Add(duration)
	if err := b.Gateway.TimeoutMember(m.GuildID, member.UserID, &until, reason); err != nil {
		replyActionErr(s, m.ChannelID, err)
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: member.UserID,
		Type:   model.HistoryTimeout,
		Reason: reason,
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record timeout history: %v", err)
	}
	reply(s, m.ChannelID, fmt.Sprintf("🔇 %s is timed out until <t:%d:R>.", member.Tag, until.Unix()))
}

func handleUntimeout(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}

	if err := b.Gateway.TimeoutMember(m.GuildID, member.UserID, nil, "Timeout lifted"); err != nil {
		replyActionErr(s, m.ChannelID, err)
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: member.UserID,
		Type:   model.HistoryUntimeout,
		Reason: "Timeout lifted",
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record untimeout history: %v", err)
	}
	reply(s, m.ChannelID, fmt.Sprintf("🔊 %s can speak again.", member.Tag))
}

func handleKick(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}
	reason := reasonFrom(args[1:])

	if err := s.GuildMemberDeleteWithReason(m.GuildID, member.UserID, reason); err != nil {
		replyActionErr(s, m.ChannelID, err)
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: member.UserID,
		Type:   model.HistoryKick,
		Reason: reason,
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record kick history: %v", err)
	}
	b.Log.LogWarn("👢 Member kicked", fmt.Sprintf("%s was kicked.", member.Tag),
		[2]string{"Moderator", m.Author.Username}, [2]string{"Reason", reason})
	reply(s, m.ChannelID, fmt.Sprintf("👢 %s has been kicked.", member.Tag))
}

func handleBan(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?ban @user [reason]")
		return
	}
	userID := parseUserArg(args[0])
	if userID == "" {
		reply(s, m.ChannelID, "Could not parse that user.")
		return
	}
	reason := reasonFrom(args[1:])

	if err := s.GuildBanCreateWithReason(m.GuildID, userID, reason, 0); err != nil {
		replyActionErr(s, m.ChannelID, err)
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: userID,
		Type:   model.HistoryBan,
		Reason: reason,
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record ban history: %v", err)
	}
	b.Log.LogError("🔨 Member banned", fmt.Sprintf("<@%s> was banned.", userID),
		[2]string{"Moderator", m.Author.Username}, [2]string{"Reason", reason})
	reply(s, m.ChannelID, fmt.Sprintf("🔨 <@%s> has been banned.", userID))
}

func handlePurge(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?purge <count>")
		return
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 || count > 100 {
		reply(s, m.ChannelID, "Count must be between 1 and 100.")
		return
	}

	msgs, err := s.ChannelMessages(m.ChannelID, count, m.ID, "", "")
	if err != nil {
		log.Printf("Failed to list messages for purge: %v", err)
		reply(s, m.ChannelID, "Could not fetch messages.")
		return
	}
	ids := make([]string, 0, len(msgs)+1)
	ids = append(ids, m.ID)
	for _, msg := range msgs {
		ids = append(ids, msg.ID)
	}
	if err := s.ChannelMessagesBulkDelete(m.ChannelID, ids); err != nil {
		log.Printf("Failed to bulk delete: %v", err)
		reply(s, m.ChannelID, "Bulk delete failed. Messages older than 14 days cannot be purged.")
		return
	}
	b.Log.LogInfo("🧹 Channel purged",
		fmt.Sprintf("%s purged %d messages in <#%s>.", m.Author.Username, len(ids)-1, m.ChannelID))
}
