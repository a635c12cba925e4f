// Package services implements the client-side use cases: indexing local
// media, uploading batches to the remote channel, downloading files back,
// and managing bot credentials.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/bots"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/photokeeper/internal/client/secrets"
	"github.com/dmitrijs2005/photokeeper/internal/common"
	"github.com/dmitrijs2005/photokeeper/internal/telegram"
)

// RemoteClient is the part of the remote API the services depend on.
// *telegram.Client satisfies it; tests substitute fakes.
type RemoteClient interface {
	GetMe(ctx context.Context) (*telegram.User, error)
	GetChat(ctx context.Context, chatID string) (*telegram.Chat, error)
	SendDocument(ctx context.Context, chatID, localPath, fileName, caption string, onProgress telegram.ProgressFunc) (*telegram.Message, error)
	GetFile(ctx context.Context, fileID string) (*telegram.File, error)
	DownloadFile(ctx context.Context, fileID, destPath string) error
	DeleteMessage(ctx context.Context, chatID string, messageID int64) (bool, error)
}

// ClientFactory builds a RemoteClient for a bot token. Tokens are resolved
// from the vault per batch, never held by a service between batches.
type ClientFactory func(token string) RemoteClient

// NewTelegramClientFactory returns the production factory.
func NewTelegramClientFactory() ClientFactory {
	return func(token string) RemoteClient {
		return telegram.NewClient(token)
	}
}

// credentialResolver turns the stored primary-bot selection into a ready
// RemoteClient. Both the upload and download services resolve through it.
type credentialResolver struct {
	botRepo      bots.Repository
	settingsRepo settings.Repository
	vault        secrets.TokenVault
	newClient    ClientFactory
}

// primarySettings loads the settings row and verifies that a primary bot
// is selected, failing with common.ErrorNoBotConfigured otherwise.
func (r *credentialResolver) primarySettings(ctx context.Context) (*models.Settings, error) {
	st, err := r.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if st.PrimaryBotID == "" {
		return nil, common.ErrorNoBotConfigured
	}
	return st, nil
}

// clientFor loads the bot record, fetches its token from the vault and
// builds a client. The vault reports common.ErrorTokenMissing when it has
// no token for the bot.
func (r *credentialResolver) clientFor(ctx context.Context, botID string) (RemoteClient, *models.Bot, error) {
	bot, err := r.botRepo.GetByID(ctx, botID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading primary bot %s: %w", botID, err)
	}

	token, err := r.vault.GetToken(bot.ID)
	if err != nil {
		return nil, nil, err
	}

	return r.newClient(token), bot, nil
}

// resolve runs both stages for callers without extra checks in between.
func (r *credentialResolver) resolve(ctx context.Context) (RemoteClient, *models.Bot, error) {
	st, err := r.primarySettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return r.clientFor(ctx, st.PrimaryBotID)
}
