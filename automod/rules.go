package automod

import (
	"fmt"
	"strings"
	"time"

	"warden-bot/model"
)

// Message is the slice of a platform message the rules need.
type Message struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	AuthorTag string
	Content   string
	Mentions  int // distinct user + role mentions
}

// Infraction is a single rule hit. The caller deletes the message, records
// the warning and runs escalation.
type Infraction struct {
	Rule   string
	Reason string
}

// Detector evaluates the automated detection rules against messages and
// joins. Each rule is a pure function of the event, the rolling windows and
// the configuration.
type Detector struct {
	cfg       model.AutomodConfig
	flood     *Tracker
	duplicate *Tracker
	joins     *Tracker
}

func NewDetector(cfg model.AutomodConfig) *Detector {
	return &Detector{
		cfg:       cfg,
		flood:     NewTracker(time.Duration(cfg.FloodWindowMs) * time.Millisecond),
		duplicate: NewTracker(time.Duration(cfg.DuplicateWindowMs) * time.Millisecond),
		joins:     NewTracker(time.Duration(cfg.RaidJoinWindowMs) * time.Millisecond),
	}
}

// Check runs the content rules in order and returns the first hit, or nil.
// Staff exemption is the caller's responsibility.
func (d *Detector) Check(msg Message, now time.Time) *Infraction {
	if !d.cfg.Enabled {
		return nil
	}

	if n := d.flood.Hit(msg.AuthorID, now); n > d.cfg.FloodLimit {
		return &Infraction{
			Rule:   "flood",
			Reason: fmt.Sprintf("Flood spam: %d+ messages in %ds", d.cfg.FloodLimit, d.cfg.FloodWindowMs/1000),
		}
	}

	lower := strings.ToLower(msg.Content)

	dupKey := msg.AuthorID + ":" + strings.TrimSpace(lower)
	if n := d.duplicate.Hit(dupKey, now); n >= d.cfg.DuplicateLimit {
		return &Infraction{
			Rule:   "duplicate",
			Reason: fmt.Sprintf("Duplicate spam: repeated message %dx", n),
		}
	}

	if msg.Mentions >= d.cfg.MassMentionLimit {
		return &Infraction{
			Rule:   "mass_mention",
			Reason: fmt.Sprintf("Mass mention (%d+)", d.cfg.MassMentionLimit),
		}
	}

	if len(msg.Content) >= d.cfg.CapsMinLength {
		if ratio := UppercaseRatio(msg.Content); ratio >= d.cfg.CapsRatioLimit {
			return &Infraction{
				Rule:   "caps",
				Reason: fmt.Sprintf("Caps spam (ratio %.0f%%)", ratio*100),
			}
		}
	}

	for _, w := range d.cfg.BannedWords {
		if w != "" && strings.Contains(lower, w) {
			return &Infraction{
				Rule:   "banned_content",
				Reason: "Banned content: " + w,
			}
		}
	}

	if d.cfg.BlockInvites {
		if strings.Contains(lower, "discord.gg") || strings.Contains(lower, "discord.com/invite") {
			return &Infraction{Rule: "invite", Reason: "Invite link"}
		}
	}

	if d.cfg.BlockLinks {
		hasLink := strings.Contains(lower, "http://") || strings.Contains(lower, "https://")
		if hasLink && !d.isWhitelistedLink(lower) {
			return &Infraction{Rule: "link", Reason: "Non-whitelisted link"}
		}
	}

	return nil
}

func (d *Detector) isWhitelistedLink(contentLower string) bool {
	for _, domain := range d.cfg.LinkWhitelist {
		if domain != "" && strings.Contains(contentLower, domain) {
			return true
		}
	}
	return false
}

// UppercaseRatio returns the fraction of ASCII letters that are uppercase.
// Non-letters are ignored; a message with no letters scores zero.
func UppercaseRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			upper++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

// RecordJoin feeds the per-guild join window and reports the count inside
// the window and whether it crosses the raid threshold.
func (d *Detector) RecordJoin(guildID string, now time.Time) (int, bool) {
	n := d.joins.Hit(guildID, now)
	return n, d.cfg.RaidEnabled && n >= d.cfg.RaidJoinThreshold
}

// AccountTooYoung reports the account age in whole days and whether it
// falls below the configured minimum.
func (d *Detector) AccountTooYoung(createdAt, now time.Time) (int, bool) {
	days := int(now.Sub(createdAt).Hours() / 24)
	return days, days < d.cfg.MinAccountAgeDays
}
