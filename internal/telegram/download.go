package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// GetFile resolves the internal file path for a previously uploaded file.
// The path is required before a direct download and expires after a while,
// so callers should not cache it.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	params := map[string]any{"file_id": fileID}
	return request[*File](ctx, c, "getFile", params)
}

// DownloadFile fetches a remote file's bytes into destPath. Two steps:
// resolve the file path via getFile, then stream from the file endpoint.
// Any resolution or transfer failure is returned as an error, never a panic.
func (c *Client) DownloadFile(ctx context.Context, fileID, destPath string) error {

	f, err := c.GetFile(ctx, fileID)
	if err != nil {
		return err
	}
	if f.FilePath == "" {
		return &APIError{Description: "getFile returned no file_path for " + fileID}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL(f.FilePath), nil)
	if err != nil {
		return &APIError{Description: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Description: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Code: resp.StatusCode, Description: fmt.Sprintf("download failed: %s", resp.Status)}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return &APIError{Description: "create destination: " + err.Error()}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return &APIError{Description: "write destination: " + err.Error()}
	}

	return out.Close()
}
