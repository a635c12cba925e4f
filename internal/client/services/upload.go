package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/backoff"
	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/bots"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/photos"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/remotephotos"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/photokeeper/internal/client/secrets"
	"github.com/dmitrijs2005/photokeeper/internal/common"
	"github.com/dmitrijs2005/photokeeper/internal/logging"
	"github.com/dmitrijs2005/photokeeper/internal/netgate"
	"github.com/dmitrijs2005/photokeeper/internal/telegram"
	"github.com/sethvargo/go-retry"
)

const (
	// uploadMaxRetries and uploadBaseDelay define the per-item retry
	// policy: up to 3 extra attempts with delays of 2s, 4s, 8s.
	uploadMaxRetries = 3
	uploadBaseDelay  = 2 * time.Second

	// trackerSettleDelay is how long finished batch state stays visible
	// before the tracker is cleared.
	trackerSettleDelay = 3 * time.Second
)

// UploadService pushes local photos to the remote channel one at a time.
// A batch runs strictly sequentially; one failed item never aborts the
// rest. Progress is published through the Tracker.
type UploadService struct {
	photoRepo  photos.Repository
	remoteRepo remotephotos.Repository
	creds      credentialResolver
	gate       *netgate.Gate
	tracker    *Tracker
	log        logging.Logger

	// retryBackoff overrides the default exponential policy; tests set
	// it to a zero-delay backoff.
	retryBackoff retry.Backoff
	settleDelay  time.Duration
	now          func() time.Time
}

func NewUploadService(
	photoRepo photos.Repository,
	remoteRepo remotephotos.Repository,
	botRepo bots.Repository,
	settingsRepo settings.Repository,
	vault secrets.TokenVault,
	gate *netgate.Gate,
	newClient ClientFactory,
	log logging.Logger,
) *UploadService {
	return &UploadService{
		photoRepo:  photoRepo,
		remoteRepo: remoteRepo,
		creds: credentialResolver{
			botRepo:      botRepo,
			settingsRepo: settingsRepo,
			vault:        vault,
			newClient:    newClient,
		},
		gate:        gate,
		tracker:     NewTracker(),
		log:         log,
		settleDelay: trackerSettleDelay,
		now:         time.Now,
	}
}

// Tracker exposes the batch progress state for read access.
func (s *UploadService) Tracker() *Tracker {
	return s.tracker
}

// PendingAssets lists the not-yet-uploaded photos as batch members.
func (s *UploadService) PendingAssets(ctx context.Context) ([]models.MediaAsset, error) {
	pending, err := s.photoRepo.GetNotUploaded(ctx)
	if err != nil {
		return nil, err
	}

	assets := make([]models.MediaAsset, 0, len(pending))
	for _, p := range pending {
		assets = append(assets, models.MediaAsset{
			ID:        p.ID,
			LocalPath: p.ID,
			FileName:  p.FileName,
			MimeType:  p.MimeType,
		})
	}
	return assets, nil
}

// UploadBatch uploads the given assets in order. The whole batch is
// rejected up front when no primary bot is configured, the network policy
// forbids uploads, or the bot token is missing from the vault; after that,
// per-item failures are recorded in the tracker and the loop moves on.
func (s *UploadService) UploadBatch(ctx context.Context, assets []models.MediaAsset) error {
	if len(assets) == 0 {
		return nil
	}

	st, err := s.creds.primarySettings(ctx)
	if err != nil {
		return err
	}
	if !s.gate.Allowed(st.WifiOnly) {
		return common.ErrorNetworkBlocked
	}
	api, bot, err := s.creds.clientFor(ctx, st.PrimaryBotID)
	if err != nil {
		return err
	}

	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	s.tracker.StartBatch(ids)

	s.log.Info(ctx, "starting upload batch", "count", len(assets), "bot", bot.Name)

	for _, asset := range assets {
		if ctx.Err() != nil {
			break
		}
		s.uploadOne(ctx, api, bot.ChannelID, asset)
	}

	finished := s.now().UnixMilli()
	if err := s.creds.botRepo.TouchLastUsed(ctx, bot.ID, finished); err != nil {
		s.log.Warn(ctx, "failed to update bot last-used time", "error", err.Error())
	}
	if err := s.creds.settingsRepo.SetLastBackupTime(ctx, finished); err != nil {
		s.log.Warn(ctx, "failed to update last backup time", "error", err.Error())
	}

	stats := s.tracker.Stats()
	s.log.Info(ctx, "upload batch finished",
		"total", stats.Total, "completed", stats.Completed, "failed", stats.Failed)

	if s.settleDelay > 0 {
		time.AfterFunc(s.settleDelay, s.tracker.Clear)
	}

	return ctx.Err()
}

// uploadOne transfers a single asset and records the outcome. Transfer
// failures retry per the backoff policy; persistence runs once after a
// successful transfer, and the item is marked completed only after both
// database writes land.
func (s *UploadService) uploadOne(ctx context.Context, api RemoteClient, channelID string, asset models.MediaAsset) {
	s.tracker.SetUploading(asset.ID)

	attempts := 0
	msg, err := backoff.Run(ctx, backoff.Options{
		MaxRetries: uploadMaxRetries,
		BaseDelay:  uploadBaseDelay,
		Backoff:    s.retryBackoff,
		Logger:     s.log,
	}, func(ctx context.Context) (*telegram.Message, error) {
		attempts++
		if attempts > 1 {
			s.tracker.SetRetryCount(asset.ID, attempts-1)
		}
		return api.SendDocument(ctx, channelID, asset.LocalPath, asset.FileName, "", func(percent int) {
			s.tracker.SetProgress(asset.ID, percent)
		})
	})
	if err != nil {
		s.log.Error(ctx, "upload failed", "photo_id", asset.ID, "error", err.Error())
		s.tracker.SetFailed(asset.ID, err.Error())
		return
	}
	if msg.Document == nil {
		s.tracker.SetFailed(asset.ID, "upload response missing document")
		return
	}

	doc := msg.Document
	mimeType := doc.MimeType
	if mimeType == "" {
		mimeType = asset.MimeType
	}
	uploadedAt := s.now().UnixMilli()

	if err := s.photoRepo.MarkUploaded(ctx, asset.ID, doc.FileID, msg.MessageID, uploadedAt); err != nil {
		s.log.Error(ctx, "failed to mark photo uploaded", "photo_id", asset.ID, "error", err.Error())
		s.tracker.SetFailed(asset.ID, "recording upload: "+err.Error())
		return
	}
	remote := &models.RemotePhoto{
		RemoteID:   doc.FileID,
		FileName:   asset.FileName,
		MimeType:   mimeType,
		FileSize:   doc.FileSize,
		UploadedAt: uploadedAt,
		MessageID:  msg.MessageID,
	}
	if err := s.remoteRepo.Insert(ctx, remote); err != nil {
		s.log.Error(ctx, "failed to record remote photo", "remote_id", doc.FileID, "error", err.Error())
		s.tracker.SetFailed(asset.ID, "recording upload: "+err.Error())
		return
	}

	s.tracker.SetCompleted(asset.ID)
	s.log.Info(ctx, "photo uploaded", "photo_id", asset.ID, "remote_id", doc.FileID, "retries", attempts-1)
}
