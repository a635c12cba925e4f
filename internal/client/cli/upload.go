package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
)

// Upload pushes every pending photo to the channel in one batch.
func (a *App) Upload(ctx context.Context) error {
	assets, err := a.uploads.PendingAssets(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(assets) == 0 {
		printlnFn("Nothing to upload")
		return nil
	}

	printlnFn(fmt.Sprintf("Uploading %d photos...", len(assets)))
	if err := a.uploads.UploadBatch(ctx, assets); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	stats := a.uploads.Tracker().Stats()
	printlnFn(fmt.Sprintf("Done: %d uploaded, %d failed", stats.Completed, stats.Failed))
	for _, item := range a.uploads.Tracker().Snapshot() {
		if item.Status == models.UploadStatusFailed {
			printlnFn(fmt.Sprintf("  failed: %s (%s)", item.PhotoID, item.Error))
		}
	}
	return nil
}

// Status shows the backup counters and the progress of the current batch.
func (a *App) Status(ctx context.Context) error {
	total, err := a.repos.Photos.Count(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	uploaded, err := a.repos.Photos.CountUploaded(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Photos: %d indexed, %d uploaded, %d pending", total, uploaded, total-uploaded))

	st, err := a.repos.Settings.Get(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	lastBackup := "never"
	if st.LastBackupTime > 0 {
		lastBackup = time.UnixMilli(st.LastBackupTime).Format(time.RFC3339)
	}
	printlnFn(fmt.Sprintf("Wifi-only: %v, auto-backup: %v, last backup: %s", st.WifiOnly, st.AutoBackupEnabled, lastBackup))

	stats := a.uploads.Tracker().Stats()
	if stats.Total > 0 {
		printlnFn(fmt.Sprintf("Current batch: %d/%d done, %d failed", stats.Completed+stats.Failed, stats.Total, stats.Failed))
		if stats.Current > 0 {
			printlnFn(fmt.Sprintf("Uploading item %d at %d%%", stats.Current, stats.CurrentProgress))
		}
	}
	return nil
}

// Wifi toggles the wifi-only upload policy.
func (a *App) Wifi(ctx context.Context, args []string) error {
	return a.toggleSetting(ctx, args, "wifi", a.repos.Settings.SetWifiOnly)
}

// Auto toggles periodic auto-backup.
func (a *App) Auto(ctx context.Context, args []string) error {
	return a.toggleSetting(ctx, args, "auto", a.repos.Settings.SetAutoBackup)
}

func (a *App) toggleSetting(ctx context.Context, args []string, name string, set func(context.Context, bool) error) error {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		printlnFn(fmt.Sprintf("Usage: %s on|off", name))
		return nil
	}

	if err := set(ctx, args[0] == "on"); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("%s is now %s", name, args[0]))
	return nil
}
