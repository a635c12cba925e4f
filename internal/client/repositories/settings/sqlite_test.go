package settings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE settings (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  primary_bot_id TEXT,
  auto_backup_enabled INTEGER NOT NULL DEFAULT 0,
  wifi_only INTEGER NOT NULL DEFAULT 1,
  last_backup_time INTEGER
);
INSERT INTO settings (id) VALUES (1);
`)
	require.NoError(t, err)
	return db
}

func TestGet_Defaults(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	s, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, s.PrimaryBotID)
	assert.False(t, s.AutoBackupEnabled)
	assert.True(t, s.WifiOnly)
	assert.Zero(t, s.LastBackupTime)
}

func TestSetters(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.SetPrimaryBot(ctx, "b1"))
	require.NoError(t, r.SetWifiOnly(ctx, false))
	require.NoError(t, r.SetAutoBackup(ctx, true))
	require.NoError(t, r.SetLastBackupTime(ctx, 555))

	s, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b1", s.PrimaryBotID)
	assert.False(t, s.WifiOnly)
	assert.True(t, s.AutoBackupEnabled)
	assert.Equal(t, int64(555), s.LastBackupTime)
}
