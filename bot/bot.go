package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"

	"warden-bot/automod"
	"warden-bot/discord"
	"warden-bot/model"
	"warden-bot/moderation"
	"warden-bot/utils"
)

// Bot bundles the session, the record store and the moderation engine, and
// owns the background sweeps.
type Bot struct {
	Session  *discordgo.Session
	DB       *sqlx.DB
	Config   *model.Config
	Gateway  *discord.Gateway
	Engine   *moderation.Engine
	Detector *automod.Detector
	Log      *utils.ModLogger

	done chan struct{}
}

func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildInvites |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	session.StateEnabled = true

	b := &Bot{
		Session:  session,
		DB:       db,
		Config:   cfg,
		Gateway:  discord.NewGateway(session),
		Detector: automod.NewDetector(cfg.Automod),
		Log:      &utils.ModLogger{Session: session, ChannelID: cfg.LogChannelID},
		done:     make(chan struct{}),
	}
	b.Engine = moderation.NewEngine(db, b.Gateway, cfg, func(n moderation.Notice) {
		b.Log.Log(n.Color, n.Title, n.Description, n.Fields)
	})
	return b, nil
}

// StaffPolicy returns the privileged-user predicate inputs for this process.
func (b *Bot) StaffPolicy() utils.StaffPolicy {
	return utils.StaffPolicy{
		OwnerID:     b.Config.OwnerUserID,
		StaffRoleID: b.Config.StaffRoleID,
	}
}
