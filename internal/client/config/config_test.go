package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "photokeeper.db", c.DatabasePath)
	assert.Equal(t, "photokeeper.vault", c.VaultPath)
	assert.Equal(t, "downloads", c.DownloadDir)
	assert.Equal(t, "thumbnails", c.ThumbnailDir)
	assert.Equal(t, 60*time.Second, c.BackupCheckInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "photokeeper.db", cfg.DatabasePath)
	assert.Equal(t, 60*time.Second, cfg.BackupCheckInterval)
}
