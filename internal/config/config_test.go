package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Receipts.Enabled())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
database:
  path: /tmp/gifts.db
log:
  level: debug
receipts:
  host: imap.example.com
  username: me@example.com
  lookback_days: 7
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/gifts.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, Default().Log.File, cfg.Log.File)
	assert.Equal(t, "imap.example.com", cfg.Receipts.Host)
	assert.Equal(t, 7, cfg.Receipts.LookbackDays)
	assert.Equal(t, "993", cfg.Receipts.Port)
	assert.Equal(t, "INBOX", cfg.Receipts.Mailbox)
	assert.True(t, cfg.Receipts.TLS)
	assert.True(t, cfg.Receipts.Enabled())
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Database.Path = "/data/gifts.db"
	cfg.Receipts.Host = "imap.example.com"
	cfg.Receipts.Username = "me"
	cfg.Receipts.Limit = 10

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSettingsCachePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/etc", "gifttracker", "settings.yaml"),
		SettingsCachePath(filepath.Join("/etc", "gifttracker", "config.yaml")),
	)
}
