package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/moderation"
	"warden-bot/store"
	"warden-bot/utils"
)

func onGuildMemberAdd(b *bot.Bot) func(s *discordgo.Session, ma *discordgo.GuildMemberAdd) {
	return func(s *discordgo.Session, ma *discordgo.GuildMemberAdd) {
		if ma.User == nil || ma.User.Bot {
			return
		}
		now := time.Now()

		gc, err := store.EnsureGuildConfig(b.DB, ma.GuildID,
			b.Config.Automod.LevelingEnabledDefault,
			b.Config.Automod.InviteTrackingEnabledDefault)
		if err != nil {
			log.Printf("Failed to load config for guild %s: %v", ma.GuildID, err)
			return
		}

		checkRaid(b, ma.GuildID, gc, now)

		inviter := ""
		if gc.InviteTrackingEnabled {
			inviter = attributeJoin(b, ma.GuildID)
		}

		reapplied, err := b.Engine.ReapplyOnRejoin(ma.GuildID, ma.User.ID, ma.User.Username)
		if err != nil {
			log.Printf("Failed to re-apply suspension for %s: %v", ma.User.ID, err)
		}
		if !reapplied {
			checkAccountAge(b, ma, now)
		}

		fields := [][2]string{
			{"User", fmt.Sprintf("%s (<@%s>)", ma.User.Username, ma.User.ID)},
			{"Account created", accountAgeLabel(ma.User.ID)},
		}
		if inviter != "" {
			fields = append(fields, [2]string{"Invited by", "<@" + inviter + ">"})
		}
		b.Log.Log(utils.ColorBlue, "📥 Member joined", "", fields)
	}
}

func onGuildMemberRemove(b *bot.Bot) func(s *discordgo.Session, mr *discordgo.GuildMemberRemove) {
	return func(s *discordgo.Session, mr *discordgo.GuildMemberRemove) {
		if mr.User == nil || mr.User.Bot {
			return
		}
		b.Log.Log(utils.ColorGrey, "📤 Member left",
			fmt.Sprintf("%s (<@%s>) left the server.", mr.User.Username, mr.User.ID), nil)
	}
}

// checkRaid feeds the join window and flips raid mode on the crossing join.
// Joins while raid mode is already active only extend nothing; the sweep
// clears the flag after the configured duration.
func checkRaid(b *bot.Bot, guildID string, gc *model.GuildConfig, now time.Time) {
	n, raid := b.Detector.RecordJoin(guildID, now)
	if !raid || gc.RaidMode {
		return
	}

	gc.RaidMode = true
	gc.RaidModeUntil = now.UnixMilli() + b.Config.Automod.RaidModeDurationMs
	if err := store.UpdateGuildConfig(b.DB, *gc); err != nil {
		log.Printf("Failed to enable raid mode for guild %s: %v", guildID, err)
		return
	}
	if b.Config.Automod.RaidLockChannels {
		b.Gateway.SetGuildSendLock(guildID, true)
	}
	b.Log.Log(utils.ColorRed, "🚨 Raid mode enabled",
		fmt.Sprintf("%d joins inside the detection window. Channels are locked until <t:%d:R>.",
			n, gc.RaidModeUntil/1000), nil)
}

// attributeJoin diffs invite use counts against the stored snapshot and
// returns the inviter whose code was consumed, if exactly identifiable.
func attributeJoin(b *bot.Bot, guildID string) string {
	invites, err := b.Session.GuildInvites(guildID)
	if err != nil {
		log.Printf("Failed to fetch invites for guild %s: %v", guildID, err)
		return ""
	}
	prev, err := store.GetInviteSnapshot(b.DB, guildID)
	if err != nil {
		log.Printf("Failed to load invite snapshot for guild %s: %v", guildID, err)
		return ""
	}

	inviter := ""
	current := make(map[string]int, len(invites))
	for _, inv := range invites {
		current[inv.Code] = inv.Uses
		if inv.Uses > prev[inv.Code] && inv.Inviter != nil {
			inviter = inv.Inviter.ID
		}
	}
	if err := store.ReplaceInviteSnapshot(b.DB, guildID, current); err != nil {
		log.Printf("Failed to store invite snapshot for guild %s: %v", guildID, err)
	}
	if inviter != "" {
		if err := store.IncrementInviteCount(b.DB, guildID, inviter); err != nil {
			log.Printf("Failed to count invite for %s: %v", inviter, err)
		}
	}
	return inviter
}

// checkAccountAge applies the join gate to accounts younger than the
// configured minimum: quarantine role, timeout, and optionally an automatic
// suspension with an open case.
func checkAccountAge(b *bot.Bot, ma *discordgo.GuildMemberAdd, now time.Time) {
	createdAt, err := discordgo.SnowflakeTimestamp(ma.User.ID)
	if err != nil {
		log.Printf("Failed to derive account age for %s: %v", ma.User.ID, err)
		return
	}
	days, tooYoung := b.Detector.AccountTooYoung(createdAt, now)
	if !tooYoung {
		return
	}

	cfg := b.Config.Automod
	reason := fmt.Sprintf("Account younger than %d days (%d days old)", cfg.MinAccountAgeDays, days)

	if err := store.AddHistory(b.DB, model.HistoryEntry{
		UserID: ma.User.ID,
		Type:   model.HistoryJoinAction,
		Reason: reason,
		Actor:  "automod",
		At:     now.UnixMilli(),
	}); err != nil {
		log.Printf("Failed to record join action for %s: %v", ma.User.ID, err)
	}

	if b.Config.QuarantineRoleID != "" {
		if err := b.Gateway.AddMemberRole(ma.GuildID, ma.User.ID, b.Config.QuarantineRoleID); err != nil {
			log.Printf("Failed to quarantine %s: %v", ma.User.ID, err)
		}
	}

	until := now.Add(time.Duration(cfg.YoungAccountTimeoutMs) * time.Millisecond)
	if err := b.Gateway.TimeoutMember(ma.GuildID, ma.User.ID, &until, reason); err != nil {
		log.Printf("Failed to timeout young account %s: %v", ma.User.ID, err)
	}

	if cfg.YoungAccountSuspend {
		caseID, err := store.AddCase(b.DB, model.CaseRecord{
			Type:      "join_gate",
			UserID:    ma.User.ID,
			UserTag:   ma.User.Username,
			Actor:     "automod",
			Reason:    reason,
			CreatedAt: now.UnixMilli(),
			Status:    model.CaseOpen,
		})
		if err != nil {
			log.Printf("Failed to open join gate case for %s: %v", ma.User.ID, err)
			return
		}
		member := &moderation.Member{
			GuildID: ma.GuildID,
			UserID:  ma.User.ID,
			Tag:     ma.User.Username,
			RoleIDs: ma.Roles,
		}
		if err := b.Engine.Suspend(member, "automod", reason, 0, caseID); err != nil {
			log.Printf("Failed to suspend young account %s: %v", ma.User.ID, err)
		}
		return
	}

	b.Log.LogWarn("🕒 Young account gated", fmt.Sprintf("%s joined with a %d day old account.", ma.User.Username, days))
}

func accountAgeLabel(userID string) string {
	createdAt, err := discordgo.SnowflakeTimestamp(userID)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("<t:%d:R>", createdAt.Unix())
}
