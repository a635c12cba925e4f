package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local photo database (default from Config)
//	-v string   path of the encrypted token vault (default from Config)
//	-o string   download directory (default from Config)
//	-t string   thumbnail cache directory (default from Config)
//	-i int      auto-backup check interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-v", "-o", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local photo database")
	fs.StringVar(&cfg.VaultPath, "v", cfg.VaultPath, "path of the encrypted token vault")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "directory downloads are written into")
	fs.StringVar(&cfg.ThumbnailDir, "t", cfg.ThumbnailDir, "directory cached thumbnails are written into")
	backupCheckInterval := fs.Int("i", int(cfg.BackupCheckInterval.Seconds()), "auto-backup check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.BackupCheckInterval = time.Duration(*backupCheckInterval) * time.Second
}
