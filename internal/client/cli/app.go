package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/client/client"
	"github.com/dmitrijs2005/photokeeper/internal/client/config"
	"github.com/dmitrijs2005/photokeeper/internal/client/secrets"
	"github.com/dmitrijs2005/photokeeper/internal/client/services"
	"github.com/dmitrijs2005/photokeeper/internal/logging"
	"github.com/dmitrijs2005/photokeeper/internal/netgate"

	_ "modernc.org/sqlite"
)

// getPassword is a test seam for the interactive passphrase prompt.
var getPassword = GetPassword

type App struct {
	config    *config.Config
	db        *sql.DB
	repos     *client.Repositories
	bots      *services.BotService
	uploads   *services.UploadService
	downloads *services.DownloadService
	scanner   *services.MediaScanner
	log       logging.Logger
	reader    *bufio.Reader
}

// NewApp opens the local database, unlocks the token vault with an
// interactively prompted passphrase, and wires the services. The caller
// owns the returned App and must Close it.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	passphrase, err := getPassword(os.Stdout)
	if err != nil {
		db.Close()
		return nil, err
	}
	vault, err := secrets.OpenFileVault(c.VaultPath, passphrase)
	if err != nil {
		db.Close()
		if errors.Is(err, secrets.ErrWrongPassphrase) {
			return nil, err
		}
		return nil, fmt.Errorf("opening vault: %w", err)
	}

	gate := netgate.New(netgate.InterfaceProvider{})
	factory := services.NewTelegramClientFactory()

	return &App{
		config:    c,
		db:        db,
		repos:     repos,
		bots:      services.NewBotService(repos.Bots, repos.Settings, vault, factory, log),
		uploads:   services.NewUploadService(repos.Photos, repos.RemotePhotos, repos.Bots, repos.Settings, vault, gate, factory, log),
		downloads: services.NewDownloadService(repos.RemotePhotos, repos.Bots, repos.Settings, vault, factory, log),
		scanner:   services.NewMediaScanner(repos.Photos, log),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the auto-backup watcher and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	go a.StartAutoBackupWatcher(ctx, a.config.BackupCheckInterval)

	fmt.Println("PhotoKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() error {
	return a.db.Close()
}

// getStatus renders the current batch progress for the prompt, empty when
// no batch is tracked.
func (a *App) getStatus() string {
	stats := a.uploads.Tracker().Stats()
	if stats.Total == 0 {
		return ""
	}
	return fmt.Sprintf("(%d/%d)", stats.Completed+stats.Failed, stats.Total)
}

// StartAutoBackupWatcher periodically uploads pending photos while the
// auto-backup setting is on. It returns when ctx is cancelled.
func (a *App) StartAutoBackupWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st, err := a.repos.Settings.Get(ctx)
			if err != nil {
				a.log.Error(ctx, "auto-backup: loading settings failed", "error", err.Error())
				continue
			}
			if !st.AutoBackupEnabled {
				continue
			}
			if err := a.uploadPending(ctx); err != nil {
				a.log.Warn(ctx, "auto-backup run failed", "error", err.Error())
			}

		case <-ctx.Done():
			return
		}
	}
}

// uploadPending uploads everything the database marks as not yet uploaded.
func (a *App) uploadPending(ctx context.Context) error {
	assets, err := a.uploads.PendingAssets(ctx)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return nil
	}
	return a.uploads.UploadBatch(ctx, assets)
}
