package settings

import (
	"context"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
)

// Repository describes operations on the singleton settings row.
type Repository interface {
	// Get returns the current settings.
	Get(ctx context.Context) (*models.Settings, error)

	// SetPrimaryBot selects which bot upload batches use.
	SetPrimaryBot(ctx context.Context, botID string) error

	// SetWifiOnly toggles the wifi-only upload policy.
	SetWifiOnly(ctx context.Context, wifiOnly bool) error

	// SetAutoBackup toggles the periodic backup loop.
	SetAutoBackup(ctx context.Context, enabled bool) error

	// SetLastBackupTime records when the last batch finished.
	SetLastBackupTime(ctx context.Context, ts int64) error
}
