package handlers

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// wantsChatbot reports whether a message addresses the bot, either by
// mention or by name.
func wantsChatbot(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	for _, u := range m.Mentions {
		if s.State.User != nil && u.ID == s.State.User.ID {
			return true
		}
	}
	lower := strings.ToLower(strings.TrimSpace(m.Content))
	return strings.HasPrefix(lower, "warden,") || strings.HasPrefix(lower, "warden:") || lower == "warden"
}

// chatbotReply answers small talk from a static phrase table. Returns an
// empty string when nothing matches.
func chatbotReply(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi "):
		return "Hello. I am Warden, keeper of order around here."
	case strings.Contains(lower, "how are you"):
		return "Vigilant, as always."
	case strings.Contains(lower, "thank"):
		return "Carry on, citizen."
	case strings.Contains(lower, "who are you") || strings.Contains(lower, "what are you"):
		return "I am Warden. I watch the gates, keep the ledger and escort troublemakers out."
	case strings.Contains(lower, "help"):
		return "Type `?menu` to see what I can do."
	case strings.Contains(lower, "rules"):
		return "Keep it civil, keep it on topic, and you will never hear from me."
	case strings.Contains(lower, "bye") || strings.Contains(lower, "goodnight"):
		return "I never sleep. Goodnight."
	default:
		return "Hm. Type `?menu` if you need something from me."
	}
}
