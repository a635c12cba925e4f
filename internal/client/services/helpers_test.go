package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/client/client"
	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/dmitrijs2005/photokeeper/internal/common"
	"github.com/dmitrijs2005/photokeeper/internal/logging"
	"github.com/dmitrijs2005/photokeeper/internal/netgate"
	"github.com/dmitrijs2005/photokeeper/internal/telegram"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// zeroBackoff retries without delay so tests never sleep.
func zeroBackoff() retry.Backoff {
	return retry.WithMaxRetries(uploadMaxRetries, retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))
}

type fakeNet struct {
	typ netgate.NetworkType
}

func (f fakeNet) NetworkType() (netgate.NetworkType, error) { return f.typ, nil }

type fakeVault struct {
	tokens map[string]string
}

func newFakeVault() *fakeVault {
	return &fakeVault{tokens: make(map[string]string)}
}

func (v *fakeVault) SaveToken(botID, token string) error {
	v.tokens[botID] = token
	return nil
}

func (v *fakeVault) GetToken(botID string) (string, error) {
	token, ok := v.tokens[botID]
	if !ok {
		return "", common.ErrorTokenMissing
	}
	return token, nil
}

func (v *fakeVault) DeleteToken(botID string) error {
	delete(v.tokens, botID)
	return nil
}

// fakeRemote is a scriptable RemoteClient. Each SendDocument call pops the
// next error from the queue for that file name; an empty queue means
// success.
type fakeRemote struct {
	mu sync.Mutex

	sendErrs      map[string][]error
	sendCalls     []string
	nextMessageID int64

	getMeErr   error
	getChatErr error
	chatIDs    []string

	downloadErr   error
	downloadCalls []string

	deleteErr   error
	deleteCalls []int64
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{sendErrs: make(map[string][]error)}
}

func (f *fakeRemote) failNext(fileName string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErrs[fileName] = append(f.sendErrs[fileName], errs...)
}

func (f *fakeRemote) sendCount(fileName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, name := range f.sendCalls {
		if name == fileName {
			n++
		}
	}
	return n
}

func (f *fakeRemote) GetMe(ctx context.Context) (*telegram.User, error) {
	if f.getMeErr != nil {
		return nil, f.getMeErr
	}
	return &telegram.User{ID: 1, IsBot: true, Username: "keeper_bot"}, nil
}

func (f *fakeRemote) GetChat(ctx context.Context, chatID string) (*telegram.Chat, error) {
	f.chatIDs = append(f.chatIDs, chatID)
	if f.getChatErr != nil {
		return nil, f.getChatErr
	}
	return &telegram.Chat{ID: -100, Type: "channel", Title: "backups"}, nil
}

func (f *fakeRemote) SendDocument(ctx context.Context, chatID, localPath, fileName, caption string, onProgress telegram.ProgressFunc) (*telegram.Message, error) {
	f.mu.Lock()
	f.sendCalls = append(f.sendCalls, fileName)
	var err error
	if q := f.sendErrs[fileName]; len(q) > 0 {
		err, f.sendErrs[fileName] = q[0], q[1:]
	}
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}

	f.mu.Lock()
	f.nextMessageID++
	id := f.nextMessageID
	f.mu.Unlock()

	return &telegram.Message{
		MessageID: id,
		Document: &telegram.Document{
			FileID:   "remote-" + fileName,
			FileName: fileName,
			MimeType: "image/jpeg",
			FileSize: 1024,
		},
	}, nil
}

func (f *fakeRemote) GetFile(ctx context.Context, fileID string) (*telegram.File, error) {
	return &telegram.File{FileID: fileID, FilePath: "documents/" + fileID}, nil
}

func (f *fakeRemote) DownloadFile(ctx context.Context, fileID, destPath string) error {
	f.downloadCalls = append(f.downloadCalls, fileID)
	if f.downloadErr != nil {
		return f.downloadErr
	}
	return os.WriteFile(destPath, []byte("image-bytes"), 0o644)
}

func (f *fakeRemote) DeleteMessage(ctx context.Context, chatID string, messageID int64) (bool, error) {
	f.deleteCalls = append(f.deleteCalls, messageID)
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return true, nil
}

// fixture wires real SQLite-backed repositories to fake network
// collaborators.
type fixture struct {
	repos *client.Repositories
	vault *fakeVault
	api   *fakeRemote
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, repos, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &fixture{
		repos: repos,
		vault: newFakeVault(),
		api:   newFakeRemote(),
	}
}

func (f *fixture) factory() ClientFactory {
	return func(token string) RemoteClient { return f.api }
}

// addPrimaryBot seeds a bot row, selects it as primary and vaults a token.
func (f *fixture) addPrimaryBot(t *testing.T, ctx context.Context) *models.Bot {
	t.Helper()

	bot := &models.Bot{ID: "bot-1", Name: "keeper", ChannelID: "-100123", IsActive: true, CreatedAt: 1}
	require.NoError(t, f.repos.Bots.Create(ctx, bot))
	require.NoError(t, f.repos.Settings.SetPrimaryBot(ctx, bot.ID))
	require.NoError(t, f.vault.SaveToken(bot.ID, "123:token"))
	return bot
}

// addPhoto seeds one not-yet-uploaded photo row and returns it as a batch
// member.
func (f *fixture) addPhoto(t *testing.T, ctx context.Context, id, fileName string) models.MediaAsset {
	t.Helper()

	require.NoError(t, f.repos.Photos.Insert(ctx, &models.Photo{
		ID:        id,
		FileName:  fileName,
		MimeType:  "image/jpeg",
		FileSize:  1024,
		DateAdded: 1,
	}))
	return models.MediaAsset{ID: id, LocalPath: id, FileName: fileName, MimeType: "image/jpeg"}
}
