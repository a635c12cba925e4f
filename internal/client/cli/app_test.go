package cli

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/client/config"
	"github.com/dmitrijs2005/photokeeper/internal/logging"
)

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DatabasePath:        filepath.Join(dir, "photos.db"),
		VaultPath:           filepath.Join(dir, "tokens.vault"),
		DownloadDir:         filepath.Join(dir, "downloads"),
		ThumbnailDir:        filepath.Join(dir, "thumbs"),
		BackupCheckInterval: time.Minute,
	}
}

func TestNewApp_CreatesDatabaseAndVault(t *testing.T) {
	stubPassword(t, []byte("passphrase"))

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app, err := NewApp(testConfig(t), log)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer app.Close()

	if got := app.getStatus(); got != "" {
		t.Fatalf("want empty status on a fresh app, got %q", got)
	}
}

func TestNewApp_ReopensExistingVault(t *testing.T) {
	stubPassword(t, []byte("passphrase"))
	cfg := testConfig(t)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	app, err := NewApp(cfg, log)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.Close()

	app, err = NewApp(cfg, log)
	if err != nil {
		t.Fatalf("NewApp reopen: %v", err)
	}
	app.Close()
}

func TestNewApp_WrongPassphrase(t *testing.T) {
	cfg := testConfig(t)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	stubPassword(t, []byte("first"))
	app, err := NewApp(cfg, log)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.Close()

	stubPassword(t, []byte("second"))
	if _, err := NewApp(cfg, log); err == nil {
		t.Fatal("expected wrong-passphrase error")
	}
}
