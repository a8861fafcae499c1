package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/store"
)

func handleAppeal(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?appeal <your appeal text>")
		return
	}
	text := strings.Join(args, " ")

	caseID, err := store.AddCase(b.DB, model.CaseRecord{
		Type:      "appeal",
		UserID:    m.Author.ID,
		UserTag:   m.Author.Username,
		Actor:     m.Author.Username,
		Reason:    text,
		CreatedAt: time.Now().UnixMilli(),
		Status:    model.CaseOpen,
	})
	if err != nil {
		log.Printf("Failed to open appeal case: %v", err)
		reply(s, m.ChannelID, "Could not file your appeal.")
		return
	}
	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: m.Author.ID,
		Type:   model.HistoryAppeal,
		Reason: text,
		Actor:  m.Author.Username,
		At:     time.Now().UnixMilli(),
		CaseID: caseID,
	}); err != nil {
		log.Printf("Failed to record appeal history: %v", err)
	}

	b.Log.LogInfo(fmt.Sprintf("📜 Appeal filed (Case #%d)", caseID),
		fmt.Sprintf("%s filed an appeal.", m.Author.Username),
		[2]string{"Text", truncate(text, 1024)})
	reply(s, m.ChannelID, fmt.Sprintf("📜 Appeal filed as Case #%d. Staff will review it.", caseID))
}

func handleHistory(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?history @user")
		return
	}
	userID := parseUserArg(args[0])
	if userID == "" {
		reply(s, m.ChannelID, "Could not parse that user.")
		return
	}

	entries, err := store.GetHistory(b.DB, userID, 15)
	if err != nil {
		log.Printf("Failed to load history: %v", err)
		return
	}
	if len(entries) == 0 {
		reply(s, m.ChannelID, "No history for that user.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "History for <@%s>:\n", userID)
	for _, e := range entries {
		fmt.Fprintf(&sb, "• [%s] %s by %s <t:%d:R>", e.Type, e.Reason, e.Actor, e.At/1000)
		if e.CaseID != 0 {
			fmt.Fprintf(&sb, " (Case #%d)", e.CaseID)
		}
		sb.WriteString("\n")
	}
	reply(s, m.ChannelID, sb.String())
}

func handleCase(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?case <id>")
		return
	}
	caseID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		reply(s, m.ChannelID, "Case IDs are numeric.")
		return
	}

	rec, err := store.GetCase(b.DB, caseID)
	if err != nil {
		log.Printf("Failed to load case %d: %v", caseID, err)
		return
	}
	if rec == nil {
		reply(s, m.ChannelID, fmt.Sprintf("Case #%d does not exist.", caseID))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Case #%d** [%s] %s\n", rec.CaseID, rec.Status, rec.Type)
	fmt.Fprintf(&sb, "User: %s (<@%s>)\n", rec.UserTag, rec.UserID)
	fmt.Fprintf(&sb, "Actor: %s\nReason: %s\nOpened: <t:%d:R>\n", rec.Actor, rec.Reason, rec.CreatedAt/1000)
	if rec.DurationMs > 0 {
		fmt.Fprintf(&sb, "Duration: %s\n", time.Duration(rec.DurationMs)*time.Millisecond)
	}
	if rec.Status == model.CaseClosed {
		fmt.Fprintf(&sb, "Closed by %s <t:%d:R>", rec.ClosedBy, rec.ClosedAt/1000)
		if rec.Note != "" {
			fmt.Fprintf(&sb, " with note: %s", rec.Note)
		}
	}
	reply(s, m.ChannelID, sb.String())
}

func handleCloseCase(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?closecase <id> [note]")
		return
	}
	caseID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		reply(s, m.ChannelID, "Case IDs are numeric.")
		return
	}
	note := strings.Join(args[1:], " ")

	closed, err := store.CloseCase(b.DB, caseID, m.Author.Username, note, time.Now().UnixMilli())
	if err != nil {
		log.Printf("Failed to close case %d: %v", caseID, err)
		reply(s, m.ChannelID, "Could not close that case.")
		return
	}
	if !closed {
		reply(s, m.ChannelID, fmt.Sprintf("Case #%d does not exist or is already closed.", caseID))
		return
	}
	b.Log.LogInfo(fmt.Sprintf("✅ Case #%d closed", caseID),
		fmt.Sprintf("Closed by %s.", m.Author.Username))
	reply(s, m.ChannelID, fmt.Sprintf("✅ Case #%d closed.", caseID))
}

func handleCourt(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	member := targetMember(b, s, m, args)
	if member == nil {
		return
	}
	reason := reasonFrom(args[1:])

	caseID, err := store.AddCase(b.DB, model.CaseRecord{
		Type:      "court",
		UserID:    member.UserID,
		UserTag:   member.Tag,
		Actor:     m.Author.Username,
		Reason:    reason,
		CreatedAt: time.Now().UnixMilli(),
		Status:    model.CaseOpen,
	})
	if err != nil {
		log.Printf("Failed to open court case: %v", err)
		reply(s, m.ChannelID, "Could not open a case.")
		return
	}

	name := fmt.Sprintf("court-%d", caseID)
	ch, err := b.Gateway.CreateCourtChannel(m.GuildID, b.Config.CourtCategoryID, name, member.UserID, b.Config.StaffRoleID)
	if err != nil {
		log.Printf("Failed to create court channel: %v", err)
		reply(s, m.ChannelID, "Could not create the hearing channel.")
		return
	}

	reply(s, ch.ID, fmt.Sprintf("⚖️ Hearing for <@%s> (Case #%d). Reason: %s", member.UserID, caseID, reason))
	reply(s, m.ChannelID, fmt.Sprintf("⚖️ Court is in session: <#%s> (Case #%d).", ch.ID, caseID))
}

func handleEvidence(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?evidence @user")
		return
	}
	userID := parseUserArg(args[0])
	if userID == "" {
		reply(s, m.ChannelID, "Could not parse that user.")
		return
	}

	recs, err := store.GetEvidence(b.DB, m.GuildID, userID, 10)
	if err != nil {
		log.Printf("Failed to load evidence: %v", err)
		return
	}
	if len(recs) == 0 {
		reply(s, m.ChannelID, "No archived messages for that user.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Archived deletions for <@%s>:\n", userID)
	for _, e := range recs {
		fmt.Fprintf(&sb, "• <t:%d:R> in <#%s>: %s\n", e.DeletedAt/1000, e.ChannelID, truncate(e.Content, 120))
	}
	reply(s, m.ChannelID, sb.String())
}
