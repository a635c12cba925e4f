package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/filex"
)

// Cloud lists the photos stored in the remote channel.
func (a *App) Cloud(ctx context.Context) error {
	records, err := a.downloads.ListRemote(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(records) == 0 {
		printlnFn("No remote photos yet")
		return nil
	}

	for _, rec := range records {
		uploaded := time.UnixMilli(rec.UploadedAt).Format(time.RFC3339)
		printlnFn(fmt.Sprintf("%s  %s  %d bytes  uploaded %s", rec.RemoteID, rec.FileName, rec.FileSize, uploaded))
	}
	return nil
}

// Download fetches a remote photo into the configured download directory.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: download <remote id>")
		return nil
	}

	dir, err := filex.EnsureDir(a.config.DownloadDir)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	dest, err := a.downloads.Download(ctx, args[0], dir)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Saved to", dest)
	return nil
}

// Thumb caches a remote photo's thumbnail locally.
func (a *App) Thumb(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: thumb <remote id>")
		return nil
	}

	dir, err := filex.EnsureDir(a.config.ThumbnailDir)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	dest, err := a.downloads.CacheThumbnail(ctx, args[0], dir)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Thumbnail cached at", dest)
	return nil
}

// Remove deletes a remote photo from the channel and drops its record.
func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: remove <remote id>")
		return nil
	}

	if err := a.downloads.DeleteRemote(ctx, args[0]); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Removed", args[0])
	return nil
}
