package bot

import (
	"log"
	"time"

	"warden-bot/store"
	"warden-bot/utils"
)

const (
	suspensionSweepInterval = time.Minute
	raidModeSweepInterval   = 30 * time.Second
)

// startScheduler launches the periodic sweeps. Each tick swallows per-item
// errors so one bad record never stalls the loop.
func (b *Bot) startScheduler() {
	go b.suspensionSweep()
	go b.raidModeSweep()
}

func (b *Bot) suspensionSweep() {
	ticker := time.NewTicker(suspensionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.Engine.ReconcileExpired()
		case <-b.done:
			return
		}
	}
}

func (b *Bot) raidModeSweep() {
	ticker := time.NewTicker(raidModeSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.expireRaidModes()
		case <-b.done:
			return
		}
	}
}

func (b *Bot) expireRaidModes() {
	guilds, err := store.GetRaidModeGuilds(b.DB)
	if err != nil {
		log.Printf("Failed to load raid mode guilds: %v", err)
		return
	}
	now := time.Now().UnixMilli()
	for _, gc := range guilds {
		if gc.RaidModeUntil == 0 || gc.RaidModeUntil > now {
			continue
		}
		gc.RaidMode = false
		gc.RaidModeUntil = 0
		if err := store.UpdateGuildConfig(b.DB, gc); err != nil {
			log.Printf("Failed to clear raid mode for guild %s: %v", gc.GuildID, err)
			continue
		}
		if b.Config.Automod.RaidLockChannels {
			b.Gateway.SetGuildSendLock(gc.GuildID, false)
		}
		b.Log.Log(utils.ColorGreen, "🟢 Raid mode expired",
			"Raid mode has been lifted automatically.", nil)
	}
}
