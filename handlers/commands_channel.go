package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/store"
	"warden-bot/utils"
)

func handleLock(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if err := b.Gateway.SetChannelSendLock(m.ChannelID, m.GuildID, true); err != nil {
		log.Printf("Failed to lock channel: %v", err)
		reply(s, m.ChannelID, "Could not lock this channel.")
		return
	}
	reply(s, m.ChannelID, "🔒 Channel locked.")
	b.Log.LogWarn("🔒 Channel locked",
		fmt.Sprintf("<#%s> locked by %s.", m.ChannelID, m.Author.Username))
}

func handleUnlock(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if err := b.Gateway.SetChannelSendLock(m.ChannelID, m.GuildID, false); err != nil {
		log.Printf("Failed to unlock channel: %v", err)
		reply(s, m.ChannelID, "Could not unlock this channel.")
		return
	}
	reply(s, m.ChannelID, "🔓 Channel unlocked.")
}

func handleLockdown(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	b.Gateway.SetGuildSendLock(m.GuildID, true)
	reply(s, m.ChannelID, "🔒 Server is in lockdown.")
	b.Log.LogError("🔒 Lockdown",
		fmt.Sprintf("Server locked down by %s.", m.Author.Username))
}

func handleUnlockdown(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	b.Gateway.SetGuildSendLock(m.GuildID, false)
	reply(s, m.ChannelID, "🔓 Lockdown lifted.")
	b.Log.LogInfo("🔓 Lockdown lifted",
		fmt.Sprintf("Lockdown lifted by %s.", m.Author.Username))
}

func handleSlowmode(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?slowmode <seconds> (0 to disable)")
		return
	}
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds < 0 || seconds > 21600 {
		reply(s, m.ChannelID, "Seconds must be between 0 and 21600.")
		return
	}
	if err := b.Gateway.SetSlowmode(m.ChannelID, seconds); err != nil {
		log.Printf("Failed to set slowmode: %v", err)
		reply(s, m.ChannelID, "Could not set slowmode.")
		return
	}
	if seconds == 0 {
		reply(s, m.ChannelID, "🐇 Slowmode disabled.")
		return
	}
	reply(s, m.ChannelID, fmt.Sprintf("🐢 Slowmode set to %ds.", seconds))
}

func handleRaidMode(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireStaff(b, s, m) {
		return
	}
	if len(args) == 0 {
		reply(s, m.ChannelID, "Usage: ?raidmode on|off")
		return
	}

	gc, err := store.EnsureGuildConfig(b.DB, m.GuildID,
		b.Config.Automod.LevelingEnabledDefault,
		b.Config.Automod.InviteTrackingEnabledDefault)
	if err != nil {
		log.Printf("Failed to load config for guild %s: %v", m.GuildID, err)
		return
	}

	switch strings.ToLower(args[0]) {
	case "on":
		gc.RaidMode = true
		gc.RaidModeUntil = time.Now().UnixMilli() + b.Config.Automod.RaidModeDurationMs
		if err := store.UpdateGuildConfig(b.DB, *gc); err != nil {
			log.Printf("Failed to enable raid mode: %v", err)
			return
		}
		if b.Config.Automod.RaidLockChannels {
			b.Gateway.SetGuildSendLock(m.GuildID, true)
		}
		reply(s, m.ChannelID, fmt.Sprintf("🚨 Raid mode enabled until <t:%d:R>.", gc.RaidModeUntil/1000))
		b.Log.Log(utils.ColorRed, "🚨 Raid mode enabled",
			fmt.Sprintf("Enabled manually by %s.", m.Author.Username), nil)
	case "off":
		gc.RaidMode = false
		gc.RaidModeUntil = 0
		if err := store.UpdateGuildConfig(b.DB, *gc); err != nil {
			log.Printf("Failed to disable raid mode: %v", err)
			return
		}
		if b.Config.Automod.RaidLockChannels {
			b.Gateway.SetGuildSendLock(m.GuildID, false)
		}
		reply(s, m.ChannelID, "🟢 Raid mode disabled.")
	default:
		reply(s, m.ChannelID, "Usage: ?raidmode on|off")
	}
}
