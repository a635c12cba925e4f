package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/bots"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/settings"
	"github.com/dmitrijs2005/photokeeper/internal/client/secrets"
	"github.com/dmitrijs2005/photokeeper/internal/common"
	"github.com/dmitrijs2005/photokeeper/internal/logging"
	"github.com/google/uuid"
)

// BotService manages bot credential records: the database rows, the vaulted
// tokens and the primary-bot selection.
type BotService struct {
	botRepo      bots.Repository
	settingsRepo settings.Repository
	vault        secrets.TokenVault
	newClient    ClientFactory
	log          logging.Logger
	now          func() time.Time
}

func NewBotService(
	botRepo bots.Repository,
	settingsRepo settings.Repository,
	vault secrets.TokenVault,
	newClient ClientFactory,
	log logging.Logger,
) *BotService {
	return &BotService{
		botRepo:      botRepo,
		settingsRepo: settingsRepo,
		vault:        vault,
		newClient:    newClient,
		log:          log,
		now:          time.Now,
	}
}

// AddBot verifies a token and channel against the live API, stores the bot
// record and vaults the token. The first bot added automatically becomes
// the primary one. Returns the stored record.
func (s *BotService) AddBot(ctx context.Context, name, token, channelID string) (*models.Bot, error) {
	api := s.newClient(token)

	me, err := api.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}
	if _, err := api.GetChat(ctx, channelID); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorChatUnreachable, err.Error())
	}

	if name == "" {
		name = me.Username
	}

	bot := &models.Bot{
		ID:        uuid.NewString(),
		Name:      name,
		ChannelID: channelID,
		IsActive:  true,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.botRepo.Create(ctx, bot); err != nil {
		return nil, fmt.Errorf("storing bot: %w", err)
	}
	if err := s.vault.SaveToken(bot.ID, token); err != nil {
		return nil, fmt.Errorf("vaulting token: %w", err)
	}

	st, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if st.PrimaryBotID == "" {
		if err := s.settingsRepo.SetPrimaryBot(ctx, bot.ID); err != nil {
			return nil, fmt.Errorf("selecting primary bot: %w", err)
		}
	}

	s.log.Info(ctx, "bot added", "id", bot.ID, "name", bot.Name, "channel", channelID)
	return bot, nil
}

// List returns all stored bots.
func (s *BotService) List(ctx context.Context) ([]*models.Bot, error) {
	return s.botRepo.GetAll(ctx)
}

// SetPrimary selects which bot upload batches use.
func (s *BotService) SetPrimary(ctx context.Context, botID string) error {
	if _, err := s.botRepo.GetByID(ctx, botID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("loading bot %s: %w", botID, err)
	}
	return s.settingsRepo.SetPrimaryBot(ctx, botID)
}
