package photos

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

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Photo) error {

	query := `INSERT INTO photos (id, remote_id, file_name, mime_type, file_size, date_added, date_modified,
				is_uploaded, uploaded_at, message_id, folder_id, ocr_text, is_encrypted)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, nullString(p.RemoteID), p.FileName, p.MimeType, p.FileSize,
		p.DateAdded, p.DateModified, p.IsUploaded, nullInt64(p.UploadedAt), nullInt64(p.MessageID),
		nullString(p.FolderID), nullString(p.OCRText), p.IsEncrypted)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {

	query := `select id, remote_id, file_name, mime_type, file_size, date_added, date_modified,
				is_uploaded, uploaded_at, message_id, folder_id, ocr_text, is_encrypted
			from photos where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanPhoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select photo: %w", err)
	}

	return p, nil
}

func (r *SQLiteRepository) GetNotUploaded(ctx context.Context) ([]*models.Photo, error) {

	query := `select id, remote_id, file_name, mime_type, file_size, date_added, date_modified,
				is_uploaded, uploaded_at, message_id, folder_id, ocr_text, is_encrypted
			from photos where is_uploaded=0 order by date_added desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error selecting photos: %w", err)
	}
	defer rows.Close()

	var result []*models.Photo

	for rows.Next() {
		item, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) MarkUploaded(ctx context.Context, id string, remoteID string, messageID int64, uploadedAt int64) error {

	query := `update photos set is_uploaded=1, remote_id=?, message_id=?, uploaded_at=? where id=?`
	result, err := r.db.ExecContext(ctx, query, remoteID, messageID, uploadedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark photo uploaded: %w", err)
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

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `select count(*) from photos`)
}

func (r *SQLiteRepository) CountUploaded(ctx context.Context) (int, error) {
	return r.count(ctx, `select count(*) from photos where is_uploaded=1`)
}

func (r *SQLiteRepository) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*models.Photo, error) {
	p := &models.Photo{}
	var remoteID, folderID, ocrText sql.NullString
	var uploadedAt, messageID sql.NullInt64

	err := row.Scan(&p.ID, &remoteID, &p.FileName, &p.MimeType, &p.FileSize, &p.DateAdded, &p.DateModified,
		&p.IsUploaded, &uploadedAt, &messageID, &folderID, &ocrText, &p.IsEncrypted)
	if err != nil {
		return nil, err
	}

	p.RemoteID = remoteID.String
	p.UploadedAt = uploadedAt.Int64
	p.MessageID = messageID.Int64
	p.FolderID = folderID.String
	p.OCRText = ocrText.String
	return p, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
