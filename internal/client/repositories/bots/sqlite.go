package bots

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

func (r *SQLiteRepository) Create(ctx context.Context, b *models.Bot) error {

	query := `INSERT INTO bots (id, name, channel_id, is_active, created_at, last_used)
			values (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.Name, b.ChannelID, b.IsActive, b.CreatedAt, nullInt64(b.LastUsed))
	if err != nil {
		return fmt.Errorf("failed to insert bot: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Bot, error) {

	query := `select id, name, channel_id, is_active, created_at, last_used from bots where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	b := &models.Bot{}
	var lastUsed sql.NullInt64
	err := row.Scan(&b.ID, &b.Name, &b.ChannelID, &b.IsActive, &b.CreatedAt, &lastUsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select bot: %w", err)
	}
	b.LastUsed = lastUsed.Int64

	return b, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.Bot, error) {

	query := `select id, name, channel_id, is_active, created_at, last_used from bots order by created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error selecting bots: %w", err)
	}
	defer rows.Close()

	var result []*models.Bot

	for rows.Next() {
		item := &models.Bot{}
		var lastUsed sql.NullInt64
		err := rows.Scan(&item.ID, &item.Name, &item.ChannelID, &item.IsActive, &item.CreatedAt, &lastUsed)
		if err != nil {
			return nil, err
		}
		item.LastUsed = lastUsed.Int64
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) TouchLastUsed(ctx context.Context, id string, ts int64) error {

	query := `update bots set last_used=? where id=?`
	result, err := r.db.ExecContext(ctx, query, ts, id)
	if err != nil {
		return fmt.Errorf("failed to update bot: %w", err)
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

func nullInt64(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
