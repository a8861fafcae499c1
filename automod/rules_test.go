package automod

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden-bot/model"
)

func testConfig() model.AutomodConfig {
	return model.AutomodConfig{
		Enabled:           true,
		FloodWindowMs:     5000,
		FloodLimit:        7,
		DuplicateWindowMs: 15000,
		DuplicateLimit:    3,
		MassMentionLimit:  6,
		CapsRatioLimit:    0.75,
		CapsMinLength:     12,
		BannedWords:       []string{"badword"},
		BlockInvites:      true,
		LinkWhitelist:     []string{"youtube.com"},
		RaidEnabled:       true,
		RaidJoinWindowMs:  10000,
		RaidJoinThreshold: 6,
		MinAccountAgeDays: 30,
	}
}

func msg(author, content string) Message {
	return Message{GuildID: "g1", ChannelID: "c1", AuthorID: author, AuthorTag: author, Content: content}
}

func TestDetectorDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	d := NewDetector(cfg)

	assert.Nil(t, d.Check(msg("u1", strings.Repeat("SPAM ", 50)), time.Now()))
}

func TestFloodRule(t *testing.T) {
	d := NewDetector(testConfig())
	now := time.Now()

	for i := 0; i < 7; i++ {
		assert.Nil(t, d.Check(msg("u1", "different message "+strings.Repeat("x", i)), now.Add(time.Duration(i)*100*time.Millisecond)))
	}
	inf := d.Check(msg("u1", "one more"), now.Add(time.Second))
	require.NotNil(t, inf)
	assert.Equal(t, "flood", inf.Rule)
}

func TestDuplicateRule(t *testing.T) {
	d := NewDetector(testConfig())
	now := time.Now()

	assert.Nil(t, d.Check(msg("u1", "hi"), now))
	assert.Nil(t, d.Check(msg("u1", "hi"), now.Add(time.Second)))
	inf := d.Check(msg("u1", "HI "), now.Add(2*time.Second))
	require.NotNil(t, inf)
	assert.Equal(t, "duplicate", inf.Rule)

	// A different author starts a fresh window.
	assert.Nil(t, d.Check(msg("u2", "hi"), now.Add(3*time.Second)))
}

func TestMassMentionRule(t *testing.T) {
	d := NewDetector(testConfig())
	m := msg("u1", "hello everyone")
	m.Mentions = 6

	inf := d.Check(m, time.Now())
	require.NotNil(t, inf)
	assert.Equal(t, "mass_mention", inf.Rule)
}

func TestCapsRule(t *testing.T) {
	d := NewDetector(testConfig())

	inf := d.Check(msg("u1", "STOP SHOUTING AT ME"), time.Now())
	require.NotNil(t, inf)
	assert.Equal(t, "caps", inf.Rule)

	// Short messages are exempt regardless of ratio.
	assert.Nil(t, d.Check(msg("u2", "OK GO"), time.Now()))
}

func TestBannedWordRule(t *testing.T) {
	d := NewDetector(testConfig())

	inf := d.Check(msg("u1", "you are such a BadWord honestly"), time.Now())
	require.NotNil(t, inf)
	assert.Equal(t, "banned_content", inf.Rule)
}

func TestInviteRule(t *testing.T) {
	d := NewDetector(testConfig())

	inf := d.Check(msg("u1", "join us at discord.gg/abc123"), time.Now())
	require.NotNil(t, inf)
	assert.Equal(t, "invite", inf.Rule)
}

func TestLinkWhitelist(t *testing.T) {
	cfg := testConfig()
	cfg.BlockLinks = true
	d := NewDetector(cfg)

	assert.Nil(t, d.Check(msg("u1", "watch https://youtube.com/v/abc"), time.Now()))

	inf := d.Check(msg("u2", "click https://sketchy.example"), time.Now())
	require.NotNil(t, inf)
	assert.Equal(t, "link", inf.Rule)
}

func TestUppercaseRatio(t *testing.T) {
	assert.Equal(t, 0.0, UppercaseRatio("12345 !!!"))
	assert.Equal(t, 1.0, UppercaseRatio("ABC"))
	assert.InDelta(t, 0.5, UppercaseRatio("AbCd"), 0.001)
}

func TestRecordJoinRaidThreshold(t *testing.T) {
	d := NewDetector(testConfig())
	now := time.Now()

	for i := 0; i < 5; i++ {
		n, raid := d.RecordJoin("g1", now.Add(time.Duration(i)*time.Second))
		assert.Equal(t, i+1, n)
		assert.False(t, raid)
	}
	n, raid := d.RecordJoin("g1", now.Add(6*time.Second))
	assert.Equal(t, 6, n)
	assert.True(t, raid)

	// Another guild's joins are counted separately.
	_, raid = d.RecordJoin("g2", now)
	assert.False(t, raid)
}

func TestAccountTooYoung(t *testing.T) {
	d := NewDetector(testConfig())
	now := time.Now()

	days, young := d.AccountTooYoung(now.AddDate(0, 0, -5), now)
	assert.Equal(t, 5, days)
	assert.True(t, young)

	days, young = d.AccountTooYoung(now.AddDate(0, 0, -45), now)
	assert.Equal(t, 45, days)
	assert.False(t, young)
}
