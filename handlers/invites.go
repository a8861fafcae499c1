package handlers

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/store"
)

func onInviteCreate(b *bot.Bot) func(s *discordgo.Session, ic *discordgo.InviteCreate) {
	return func(s *discordgo.Session, ic *discordgo.InviteCreate) {
		refreshInviteSnapshot(b, ic.GuildID)
	}
}

func onInviteDelete(b *bot.Bot) func(s *discordgo.Session, id *discordgo.InviteDelete) {
	return func(s *discordgo.Session, id *discordgo.InviteDelete) {
		refreshInviteSnapshot(b, id.GuildID)
	}
}

// refreshInviteSnapshot replaces the stored use counts with the live ones so
// the next join diff starts from a clean baseline.
func refreshInviteSnapshot(b *bot.Bot, guildID string) {
	uses, err := b.Gateway.GuildInviteUses(guildID)
	if err != nil {
		log.Printf("Failed to refresh invites for guild %s: %v", guildID, err)
		return
	}
	if err := store.ReplaceInviteSnapshot(b.DB, guildID, uses); err != nil {
		log.Printf("Failed to store invite snapshot for guild %s: %v", guildID, err)
	}
}
