package handlers

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/store"
	"warden-bot/utils"
)

func onMessageDelete(b *bot.Bot) func(s *discordgo.Session, md *discordgo.MessageDelete) {
	return func(s *discordgo.Session, md *discordgo.MessageDelete) {
		cached := md.BeforeDelete
		if cached == nil || cached.Author == nil || cached.Author.Bot || cached.Content == "" {
			return
		}

		created := cached.Timestamp.UnixMilli()
		if err := store.AddEvidence(b.DB, model.EvidenceRecord{
			GuildID:   md.GuildID,
			MessageID: md.ID,
			ChannelID: md.ChannelID,
			AuthorID:  cached.Author.ID,
			AuthorTag: cached.Author.Username,
			Content:   cached.Content,
			CreatedAt: created,
			DeletedAt: time.Now().UnixMilli(),
		}); err != nil {
			log.Printf("Failed to archive deleted message %s: %v", md.ID, err)
		}

		b.Log.Log(utils.ColorGrey, "🗑️ Message deleted", truncate(cached.Content, 1024), [][2]string{
			{"Author", cached.Author.Username},
			{"Channel", "<#" + md.ChannelID + ">"},
		})
	}
}

func onMessageUpdate(b *bot.Bot) func(s *discordgo.Session, mu *discordgo.MessageUpdate) {
	return func(s *discordgo.Session, mu *discordgo.MessageUpdate) {
		if mu.Author == nil || mu.Author.Bot || mu.BeforeUpdate == nil {
			return
		}
		if mu.BeforeUpdate.Content == mu.Content || mu.Content == "" {
			return
		}

		b.Log.Log(utils.ColorOrange, "✏️ Message edited", "", [][2]string{
			{"Author", mu.Author.Username},
			{"Channel", "<#" + mu.ChannelID + ">"},
			{"Before", truncate(mu.BeforeUpdate.Content, 512)},
			{"After", truncate(mu.Content, 512)},
		})
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
