package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"warden-bot/model"
)

// Load reads the process configuration: identity and role IDs from the
// environment (an optional .env file is merged first), automod tunables
// from defaults plus an optional automod.yaml in the data directory.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &model.Config{
		BotToken:         os.Getenv("BOT_TOKEN"),
		LogChannelID:     os.Getenv("LOG_CHANNEL_ID"),
		OwnerUserID:      os.Getenv("OWNER_USER_ID"),
		StaffRoleID:      os.Getenv("STAFF_ROLE_ID"),
		SuspendedRoleID:  os.Getenv("SUSPENDED_ROLE_ID"),
		PartnerRoleID:    os.Getenv("PARTNER_ROLE_ID"),
		QuarantineRoleID: os.Getenv("QUARANTINE_ROLE_ID"),
		CourtCategoryID:  os.Getenv("COURT_CATEGORY_ID"),
		DataDir:          os.Getenv("DATA_DIR"),
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.SuspendedRoleID == "" {
		return nil, fmt.Errorf("SUSPENDED_ROLE_ID is not set")
	}
	if cfg.LogChannelID == "" {
		log.Println("LOG_CHANNEL_ID is not set, moderation log embeds disabled")
	}

	automod, err := loadAutomod(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Automod = automod
	return cfg, nil
}

func loadAutomod(dataDir string) (model.AutomodConfig, error) {
	v := viper.New()

	v.SetDefault("enabled", true)
	v.SetDefault("flood_window_ms", 5000)
	v.SetDefault("flood_limit", 7)
	v.SetDefault("duplicate_window_ms", 15000)
	v.SetDefault("duplicate_limit", 3)
	v.SetDefault("mass_mention_limit", 6)
	v.SetDefault("caps_ratio_limit", 0.75)
	v.SetDefault("caps_min_length", 12)
	v.SetDefault("banned_words", []string{})
	v.SetDefault("block_invites", true)
	v.SetDefault("block_links", false)
	v.SetDefault("link_whitelist", []string{"tenor.com", "giphy.com", "youtube.com", "youtu.be"})
	v.SetDefault("warnings_before_timeout", 3)
	v.SetDefault("warnings_before_suspend", 6)
	v.SetDefault("timeout_on_warn_ms", int64(3600000))
	v.SetDefault("min_account_age_days", 30)
	v.SetDefault("young_account_timeout_ms", int64(86400000))
	v.SetDefault("young_account_suspend", true)
	v.SetDefault("raid_enabled", true)
	v.SetDefault("raid_join_window_ms", 10000)
	v.SetDefault("raid_join_threshold", 6)
	v.SetDefault("raid_mode_duration_ms", int64(600000))
	v.SetDefault("raid_lock_channels", true)
	v.SetDefault("leveling_enabled_default", true)
	v.SetDefault("invite_tracking_enabled_default", true)
	v.SetDefault("xp_per_message_min", 8)
	v.SetDefault("xp_per_message_max", 18)
	v.SetDefault("xp_cooldown_ms", int64(30000))
	v.SetDefault("level_up_announce", true)

	v.SetConfigName("automod")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return model.AutomodConfig{}, fmt.Errorf("failed to read %s: %w", filepath.Join(dataDir, "automod.yaml"), err)
		}
	} else {
		log.Printf("Loaded automod overrides from %s", v.ConfigFileUsed())
	}

	var cfg model.AutomodConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.AutomodConfig{}, fmt.Errorf("failed to decode automod config: %w", err)
	}
	return cfg, nil
}
