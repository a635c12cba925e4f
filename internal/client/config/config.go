package config

import "time"

// Config holds runtime settings for the PhotoKeeper CLI.
//
// Fields:
//   - DatabasePath: location of the local SQLite photo database.
//   - VaultPath: location of the encrypted bot-token vault.
//   - DownloadDir: where downloaded photos are written.
//   - ThumbnailDir: where cached thumbnails are written.
//   - BackupCheckInterval: how often the watch loop looks for new photos.
//
// Units: BackupCheckInterval is a time.Duration (e.g., 60*time.Second).
type Config struct {
	DatabasePath        string
	VaultPath           string
	DownloadDir         string
	ThumbnailDir        string
	BackupCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "photokeeper.db"
	c.VaultPath = "photokeeper.vault"
	c.DownloadDir = "downloads"
	c.ThumbnailDir = "thumbnails"
	c.BackupCheckInterval = 60 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
