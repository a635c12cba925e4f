package remotephotos

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

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.RemotePhoto) error {

	query := `INSERT INTO remote_photos (remote_id, file_name, mime_type, file_size, uploaded_at, message_id, thumbnail_cached, folder_id)
			values (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.RemoteID, p.FileName, p.MimeType, p.FileSize,
		p.UploadedAt, p.MessageID, p.ThumbnailCached, nullString(p.FolderID))
	if err != nil {
		return fmt.Errorf("failed to insert remote photo: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetByRemoteID(ctx context.Context, remoteID string) (*models.RemotePhoto, error) {

	query := `select remote_id, file_name, mime_type, file_size, uploaded_at, message_id, thumbnail_cached, folder_id
			from remote_photos where remote_id=?`
	row := r.db.QueryRowContext(ctx, query, remoteID)

	p := &models.RemotePhoto{}
	var folderID sql.NullString
	err := row.Scan(&p.RemoteID, &p.FileName, &p.MimeType, &p.FileSize, &p.UploadedAt,
		&p.MessageID, &p.ThumbnailCached, &folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select remote photo: %w", err)
	}
	p.FolderID = folderID.String

	return p, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.RemotePhoto, error) {

	query := `select remote_id, file_name, mime_type, file_size, uploaded_at, message_id, thumbnail_cached, folder_id
			from remote_photos order by uploaded_at desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error selecting remote photos: %w", err)
	}
	defer rows.Close()

	var result []*models.RemotePhoto

	for rows.Next() {
		item := &models.RemotePhoto{}
		var folderID sql.NullString
		err := rows.Scan(&item.RemoteID, &item.FileName, &item.MimeType, &item.FileSize,
			&item.UploadedAt, &item.MessageID, &item.ThumbnailCached, &folderID)
		if err != nil {
			return nil, err
		}
		item.FolderID = folderID.String
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) MarkThumbnailCached(ctx context.Context, remoteID string) error {

	query := `update remote_photos set thumbnail_cached=1 where remote_id=?`
	result, err := r.db.ExecContext(ctx, query, remoteID)
	if err != nil {
		return fmt.Errorf("failed to mark thumbnail cached: %w", err)
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

func (r *SQLiteRepository) Delete(ctx context.Context, remoteID string) error {

	query := `delete from remote_photos where remote_id=?`
	result, err := r.db.ExecContext(ctx, query, remoteID)
	if err != nil {
		return fmt.Errorf("failed to delete remote photo: %w", err)
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

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
