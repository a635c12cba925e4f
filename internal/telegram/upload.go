package telegram

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
)

// ProgressFunc receives upload progress as a percentage in [0,100].
type ProgressFunc func(percent int)

// SendDocument uploads the file at localPath as a document (original bytes,
// no recompression) to the destination chat. onProgress, when non-nil, is
// invoked as file bytes go out, with floor(sent/total*100). The returned
// message carries the remote file handle and the message id.
func (c *Client) SendDocument(ctx context.Context, chatID, localPath, fileName, caption string, onProgress ProgressFunc) (*Message, error) {

	info, err := os.Stat(localPath)
	if err != nil {
		return nil, &APIError{Description: "file does not exist: " + localPath}
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, &APIError{Description: "open file: " + err.Error()}
	}
	defer file.Close()

	reader := &progressReader{r: file, total: info.Size(), onProgress: onProgress}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeDocumentForm(mw, chatID, fileName, caption, reader)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendDocument"), pr)
	if err != nil {
		return nil, &APIError{Description: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Description: err.Error()}
	}
	defer resp.Body.Close()

	return decodeEnvelope[*Message](resp)
}

func writeDocumentForm(mw *multipart.Writer, chatID, fileName, caption string, content io.Reader) error {
	if err := mw.WriteField("chat_id", chatID); err != nil {
		return err
	}
	if caption != "" {
		if err := mw.WriteField("caption", caption); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile("document", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content)
	return err
}

// progressReader counts bytes as they are read out of the file and reports
// whole-percent transitions only, so a large file does not flood the
// callback with duplicate values.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	last       int
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.onProgress == nil || p.total <= 0 {
		return
	}
	percent := int(p.sent * 100 / p.total)
	if percent > 100 {
		percent = 100
	}
	if percent != p.last {
		p.last = percent
		p.onProgress(percent)
	}
}
