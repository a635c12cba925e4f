package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/dmitrijs2005/photokeeper/internal/common"
	"github.com/dmitrijs2005/photokeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.Settings, error) {

	query := `select primary_bot_id, auto_backup_enabled, wifi_only, last_backup_time from settings where id=1`
	row := r.db.QueryRowContext(ctx, query)

	s := &models.Settings{}
	var primaryBotID sql.NullString
	var lastBackupTime sql.NullInt64
	err := row.Scan(&primaryBotID, &s.AutoBackupEnabled, &s.WifiOnly, &lastBackupTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select settings: %w", err)
	}
	s.PrimaryBotID = primaryBotID.String
	s.LastBackupTime = lastBackupTime.Int64

	return s, nil
}

func (r *SQLiteRepository) SetPrimaryBot(ctx context.Context, botID string) error {
	return r.set(ctx, `update settings set primary_bot_id=? where id=1`, botID)
}

func (r *SQLiteRepository) SetWifiOnly(ctx context.Context, wifiOnly bool) error {
	return r.set(ctx, `update settings set wifi_only=? where id=1`, wifiOnly)
}

func (r *SQLiteRepository) SetAutoBackup(ctx context.Context, enabled bool) error {
	return r.set(ctx, `update settings set auto_backup_enabled=? where id=1`, enabled)
}

func (r *SQLiteRepository) SetLastBackupTime(ctx context.Context, ts int64) error {
	return r.set(ctx, `update settings set last_backup_time=? where id=1`, ts)
}

func (r *SQLiteRepository) set(ctx context.Context, query string, arg any) error {
	result, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected != 1 {
		return common.ErrorNotFound
	}

	return nil
}
