package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/dmitrijs2005/photokeeper/internal/client/repositories/photos"
	"github.com/dmitrijs2005/photokeeper/internal/logging"
	"github.com/evanoberholster/imagemeta"
)

// mediaTypes maps recognized file extensions to their mime types. Files
// with any other extension are skipped by the scanner.
var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

// MediaScanner indexes media files on disk into the photos table. A photo's
// id is its absolute path, so re-scanning is idempotent and never disturbs
// upload state.
type MediaScanner struct {
	photoRepo photos.Repository
	log       logging.Logger
}

func NewMediaScanner(photoRepo photos.Repository, log logging.Logger) *MediaScanner {
	return &MediaScanner{photoRepo: photoRepo, log: log}
}

// ScanDirectory walks dir recursively and indexes every recognized media
// file, returning how many files were seen. Unreadable entries are logged
// and skipped.
func (s *MediaScanner) ScanDirectory(ctx context.Context, dir string) (int, error) {
	seen := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn(ctx, "skipping unreadable entry", "path", path, "error", err.Error())
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		mimeType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.log.Warn(ctx, "skipping unreadable file", "path", path, "error", err.Error())
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		photo := &models.Photo{
			ID:           abs,
			FileName:     filepath.Base(path),
			MimeType:     mimeType,
			FileSize:     info.Size(),
			DateAdded:    captureTime(abs, info.ModTime()).UnixMilli(),
			DateModified: info.ModTime().UnixMilli(),
		}
		if err := s.photoRepo.Insert(ctx, photo); err != nil {
			return err
		}
		seen++
		return nil
	})
	if err != nil {
		return seen, err
	}

	s.log.Info(ctx, "scan finished", "dir", dir, "files", seen)
	return seen, nil
}

// captureTime reads the capture timestamp from the file's metadata,
// preferring DateTimeOriginal, then CreateDate, then ModifyDate. Files
// without usable metadata fall back to the filesystem modification time.
func captureTime(path string, fallback time.Time) time.Time {
	f, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	exif, err := imagemeta.Decode(f)
	if err != nil {
		return fallback
	}

	for _, ts := range []time.Time{exif.DateTimeOriginal(), exif.CreateDate(), exif.ModifyDate()} {
		if !ts.IsZero() {
			return ts
		}
	}
	return fallback
}
