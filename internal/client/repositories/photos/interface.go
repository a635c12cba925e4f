package photos

import (
	"context"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
)

// Repository describes operations on the local photo table.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Insert adds a photo row if it does not exist yet. Re-indexing a
	// known photo is a no-op so upload state is never reset by a scan.
	Insert(ctx context.Context, photo *models.Photo) error

	// GetByID returns the photo with the given local id.
	GetByID(ctx context.Context, id string) (*models.Photo, error)

	// GetNotUploaded returns photos that still need to be uploaded,
	// newest first.
	GetNotUploaded(ctx context.Context) ([]*models.Photo, error)

	// MarkUploaded flips the uploaded flag and records the remote file id,
	// message id and upload timestamp in one statement.
	MarkUploaded(ctx context.Context, id string, remoteID string, messageID int64, uploadedAt int64) error

	// Count returns the total number of indexed photos.
	Count(ctx context.Context) (int, error)

	// CountUploaded returns the number of photos already uploaded.
	CountUploaded(ctx context.Context) (int, error)
}
