package model

// Config is the process-wide configuration, loaded once at startup from the
// environment plus the automod tunables file.
type Config struct {
	BotToken     string
	LogChannelID string

	OwnerUserID      string
	StaffRoleID      string
	SuspendedRoleID  string
	PartnerRoleID    string
	QuarantineRoleID string
	CourtCategoryID  string

	DataDir string

	Automod AutomodConfig
}

// AutomodConfig carries the detection-rule and escalation tunables. Defaults
// are set in config.Load and may be overridden by data/automod.yaml.
type AutomodConfig struct {
	Enabled bool `mapstructure:"enabled"`

	FloodWindowMs     int64 `mapstructure:"flood_window_ms"`
	FloodLimit        int   `mapstructure:"flood_limit"`
	DuplicateWindowMs int64 `mapstructure:"duplicate_window_ms"`
	DuplicateLimit    int   `mapstructure:"duplicate_limit"`
	MassMentionLimit  int   `mapstructure:"mass_mention_limit"`

	CapsRatioLimit float64 `mapstructure:"caps_ratio_limit"`
	CapsMinLength  int     `mapstructure:"caps_min_length"`

	BannedWords   []string `mapstructure:"banned_words"`
	BlockInvites  bool     `mapstructure:"block_invites"`
	BlockLinks    bool     `mapstructure:"block_links"`
	LinkWhitelist []string `mapstructure:"link_whitelist"`

	WarningsBeforeTimeout int   `mapstructure:"warnings_before_timeout"`
	WarningsBeforeSuspend int   `mapstructure:"warnings_before_suspend"`
	TimeoutOnWarnMs       int64 `mapstructure:"timeout_on_warn_ms"`

	MinAccountAgeDays     int   `mapstructure:"min_account_age_days"`
	YoungAccountTimeoutMs int64 `mapstructure:"young_account_timeout_ms"`
	YoungAccountSuspend   bool  `mapstructure:"young_account_suspend"`

	RaidEnabled        bool  `mapstructure:"raid_enabled"`
	RaidJoinWindowMs   int64 `mapstructure:"raid_join_window_ms"`
	RaidJoinThreshold  int   `mapstructure:"raid_join_threshold"`
	RaidModeDurationMs int64 `mapstructure:"raid_mode_duration_ms"`
	RaidLockChannels   bool  `mapstructure:"raid_lock_channels"`

	LevelingEnabledDefault       bool  `mapstructure:"leveling_enabled_default"`
	InviteTrackingEnabledDefault bool  `mapstructure:"invite_tracking_enabled_default"`
	XPPerMessageMin              int   `mapstructure:"xp_per_message_min"`
	XPPerMessageMax              int   `mapstructure:"xp_per_message_max"`
	XPCooldownMs                 int64 `mapstructure:"xp_cooldown_ms"`
	LevelUpAnnounce              bool  `mapstructure:"level_up_announce"`
}
