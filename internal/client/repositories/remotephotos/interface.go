package remotephotos

import (
	"context"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
)

// Repository describes operations on the remote photo table: the durable
// source of truth for what exists in the channel, independent of the local
// photos table. Rows are append-only from the upload pipeline's point of
// view; only the thumbnail cache flag is ever touched afterwards.
type Repository interface {
	// Insert records one successful remote transfer.
	Insert(ctx context.Context, photo *models.RemotePhoto) error

	// GetByRemoteID returns the record for a remote file id.
	GetByRemoteID(ctx context.Context, remoteID string) (*models.RemotePhoto, error)

	// GetAll returns all remote records, newest first.
	GetAll(ctx context.Context) ([]*models.RemotePhoto, error)

	// MarkThumbnailCached flags a record once its thumbnail has been
	// downloaded locally.
	MarkThumbnailCached(ctx context.Context, remoteID string) error

	// Delete removes the record for a remote file that has been deleted
	// from the channel.
	Delete(ctx context.Context, remoteID string) error
}
