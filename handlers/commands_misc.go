package handlers

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"warden-bot/bot"
)

var startedAt = time.Now()

func handlePing(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	reply(s, m.ChannelID, fmt.Sprintf("🏓 Pong! Gateway latency: %s", s.HeartbeatLatency().Round(time.Millisecond)))
}

func handleStatus(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	usage := 0.0
	if len(cpuPercent) > 0 {
		usage = cpuPercent[0]
	}
	osLabel := "unknown"
	if hostInfo != nil {
		osLabel = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
	}
	memLabel := "unknown"
	if vm != nil {
		memLabel = fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Warden status",
		Color: 0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS", Value: osLabel, Inline: true},
			{Name: "🐹 Go", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPUs", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "🔥 CPU usage", Value: fmt.Sprintf("%.1f%%", usage), Inline: true},
			{Name: "🧠 Memory", Value: memLabel, Inline: true},
			{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "⏱️ Latency", Value: s.HeartbeatLatency().Round(time.Millisecond).String(), Inline: true},
			{Name: "🏠 Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "⏳ Uptime", Value: time.Since(startedAt).Round(time.Second).String(), Inline: true},
		},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Printf("Failed to send status embed: %v", err)
	}
}

func handleMenu(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	embed := &discordgo.MessageEmbed{
		Title:       "Warden command menu",
		Description: "Prefix every command with `?`.",
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Moderation", Value: "`banish` `restore` `partner` `warn` `warnings` `clearwarnings` `timeout` `untimeout` `kick` `ban` `purge`"},
			{Name: "Channels", Value: "`lock` `unlock` `lockdown` `unlockdown` `slowmode` `raidmode`"},
			{Name: "Cases", Value: "`appeal` `history` `case` `closecase` `court` `evidence`"},
			{Name: "Community", Value: "`afk` `back` `rank` `leaderboard` `invites`"},
			{Name: "Configuration", Value: "`chatbot` `leveling` `invitetracker` `addcmd` `addcmd_staff` `addcmd_owner` `delcmd` `cmds`"},
			{Name: "Misc", Value: "`ping` `status` `menu`"},
		},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Printf("Failed to send menu embed: %v", err)
	}
}

func handleSay(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !requireOwner(b, s, m) {
		return
	}
	if len(args) == 0 {
		return
	}
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("Failed to delete say command: %v", err)
	}
	reply(s, m.ChannelID, strings.Join(args, " "))
}
