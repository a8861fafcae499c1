package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// Embed colors for the log channel.
const (
	ColorBlue   = 3447003
	ColorGreen  = 3066993
	ColorOrange = 15105570
	ColorRed    = 15158332
	ColorGrey   = 9807270
	ColorPurple = 10181046
	ColorYellow = 16776960
)

// ModLogger posts moderation events as embeds to a fixed log channel.
// A zero ChannelID disables channel logging; failures are logged locally
// and swallowed.
type ModLogger struct {
	Session   *discordgo.Session
	ChannelID string
}

// Log posts a colored embed with optional name/value field pairs.
func (l *ModLogger) Log(color int, title, description string, fields [][2]string) {
	if l == nil || l.Session == nil || l.ChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
	for _, f := range fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f[0],
			Value:  f[1],
			Inline: true,
		})
	}

	if _, err := l.Session.ChannelMessageSendEmbed(l.ChannelID, embed); err != nil {
		log.Printf("Failed to send log embed %q: %v", title, err)
	}
}

// LogInfo posts a blue informational embed.
func (l *ModLogger) LogInfo(title, description string, fields ...[2]string) {
	l.Log(ColorBlue, title, description, fields)
}

// LogWarn posts an orange warning embed.
func (l *ModLogger) LogWarn(title, description string, fields ...[2]string) {
	l.Log(ColorOrange, title, description, fields)
}

// LogError posts a red error embed.
func (l *ModLogger) LogError(title, description string, fields ...[2]string) {
	l.Log(ColorRed, title, description, fields)
}
