package bots

import (
	"context"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
)

// Repository describes operations on stored bot credential records.
// Tokens never pass through here; they live in the encrypted vault.
type Repository interface {
	// Create stores a new bot record.
	Create(ctx context.Context, bot *models.Bot) error

	// GetByID returns the bot with the given id.
	GetByID(ctx context.Context, id string) (*models.Bot, error)

	// GetAll returns all stored bots.
	GetAll(ctx context.Context) ([]*models.Bot, error)

	// TouchLastUsed records when the bot was last used for a batch.
	TouchLastUsed(ctx context.Context, id string, ts int64) error
}
