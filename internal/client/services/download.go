package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/bots"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/remotephotos"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/photokeeper/internal/client/secrets"
	"github.com/dmitrijs2005/photokeeper/internal/logging"
)

// DownloadService fetches files back from the remote channel using the
// stored remote records.
type DownloadService struct {
	remoteRepo remotephotos.Repository
	creds      credentialResolver
	log        logging.Logger
}

func NewDownloadService(
	remoteRepo remotephotos.Repository,
	botRepo bots.Repository,
	settingsRepo settings.Repository,
	vault secrets.TokenVault,
	newClient ClientFactory,
	log logging.Logger,
) *DownloadService {
	return &DownloadService{
		remoteRepo: remoteRepo,
		creds: credentialResolver{
			botRepo:      botRepo,
			settingsRepo: settingsRepo,
			vault:        vault,
			newClient:    newClient,
		},
		log: log,
	}
}

// Download fetches the file behind a remote record into destDir, named
// after the original file name. Returns the path of the written file.
func (s *DownloadService) Download(ctx context.Context, remoteID, destDir string) (string, error) {
	rec, err := s.remoteRepo.GetByRemoteID(ctx, remoteID)
	if err != nil {
		return "", fmt.Errorf("looking up remote photo %s: %w", remoteID, err)
	}

	api, _, err := s.creds.resolve(ctx)
	if err != nil {
		return "", err
	}

	name := rec.FileName
	if name == "" {
		name = rec.RemoteID
	}
	dest := filepath.Join(destDir, name)

	if err := api.DownloadFile(ctx, rec.RemoteID, dest); err != nil {
		return "", err
	}

	s.log.Info(ctx, "photo downloaded", "remote_id", remoteID, "dest", dest)
	return dest, nil
}

// CacheThumbnail downloads the file into the local thumbnail cache and
// flags the record so the gallery can render it without another round
// trip. Already-cached records are served from disk.
func (s *DownloadService) CacheThumbnail(ctx context.Context, remoteID, cacheDir string) (string, error) {
	rec, err := s.remoteRepo.GetByRemoteID(ctx, remoteID)
	if err != nil {
		return "", fmt.Errorf("looking up remote photo %s: %w", remoteID, err)
	}

	dest := filepath.Join(cacheDir, rec.RemoteID)
	if rec.ThumbnailCached {
		return dest, nil
	}

	api, _, err := s.creds.resolve(ctx)
	if err != nil {
		return "", err
	}

	if err := api.DownloadFile(ctx, rec.RemoteID, dest); err != nil {
		return "", err
	}
	if err := s.remoteRepo.MarkThumbnailCached(ctx, rec.RemoteID); err != nil {
		return "", fmt.Errorf("flagging cached thumbnail %s: %w", remoteID, err)
	}

	return dest, nil
}

// DeleteRemote removes a file from the channel and drops its local record.
// The channel message is deleted first; when that fails the record is kept
// so the file stays reachable.
func (s *DownloadService) DeleteRemote(ctx context.Context, remoteID string) error {
	rec, err := s.remoteRepo.GetByRemoteID(ctx, remoteID)
	if err != nil {
		return fmt.Errorf("looking up remote photo %s: %w", remoteID, err)
	}

	api, bot, err := s.creds.resolve(ctx)
	if err != nil {
		return err
	}

	if _, err := api.DeleteMessage(ctx, bot.ChannelID, rec.MessageID); err != nil {
		return fmt.Errorf("deleting channel message %d: %w", rec.MessageID, err)
	}
	if err := s.remoteRepo.Delete(ctx, rec.RemoteID); err != nil {
		return fmt.Errorf("dropping remote record %s: %w", remoteID, err)
	}

	s.log.Info(ctx, "remote photo deleted", "remote_id", remoteID, "message_id", rec.MessageID)
	return nil
}

// ListRemote returns all remote records, newest first.
func (s *DownloadService) ListRemote(ctx context.Context) ([]*models.RemotePhoto, error) {
	return s.remoteRepo.GetAll(ctx)
}
