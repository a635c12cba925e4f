// Package telegram is a thin Bot API client covering the calls the backup
// pipeline needs: identity and destination checks, document upload with
// progress reporting, file download, and best-effort message deletion.
//
// Every operation returns a typed *APIError on failure, whether the failure
// came from the API (error_code in the body) or from the transport
// (connection failure, malformed body, Code 0). Ordinary network problems
// never panic and never escape as raw transport errors, so callers can
// classify retriability uniformly.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	defaultAPIBase  = "https://api.telegram.org/bot"
	defaultFileBase = "https://api.telegram.org/file/bot"

	// requestTimeout bounds the small JSON calls. Uploads and downloads
	// manage their own deadlines through the caller's context.
	requestTimeout = 30 * time.Second
)

type Client struct {
	httpClient *http.Client
	token      string
	apiBase    string
	fileBase   string
}

// NewClient creates a Bot API client for the given bot token.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{},
		token:      token,
		apiBase:    defaultAPIBase,
		fileBase:   defaultFileBase,
	}
}

// NewClientWithBase creates a client against custom base URLs.
// Used by tests to point the client at an httptest server.
func NewClientWithBase(token, apiBase, fileBase string) *Client {
	c := NewClient(token)
	c.apiBase = apiBase
	c.fileBase = fileBase
	return c
}

func (c *Client) methodURL(method string) string {
	return c.apiBase + c.token + "/" + method
}

func (c *Client) fileURL(filePath string) string {
	return c.fileBase + c.token + "/" + filePath
}

// request performs one JSON POST against the Bot API and unwraps the
// envelope. Transport and decoding failures become *APIError with Code 0.
func request[T any](ctx context.Context, c *Client, method string, params any) (T, error) {
	var zero T

	var body *bytes.Reader
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return zero, &APIError{Description: "marshal request: " + err.Error()}
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), body)
	if err != nil {
		return zero, &APIError{Description: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &APIError{Description: err.Error()}
	}
	defer resp.Body.Close()

	return decodeEnvelope[T](resp)
}

func decodeEnvelope[T any](resp *http.Response) (T, error) {
	var zero T

	var env response[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, &APIError{Description: "invalid response: " + err.Error()}
	}

	if !env.OK {
		code := env.ErrorCode
		if code == 0 {
			// some proxies strip the body code, fall back to HTTP status
			code = resp.StatusCode
		}
		desc := env.Description
		if desc == "" {
			desc = "request failed"
		}
		return zero, &APIError{Code: code, Description: desc}
	}

	return env.Result, nil
}

// GetMe verifies the token is valid and returns the bot identity.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	return request[*User](ctx, c, "getMe", nil)
}

// GetChat verifies the bot can address the destination channel or group.
// A failure here usually means the bot is not a member, lacks rights, or
// the chat id is wrong; callers surface it as a distinct condition.
func (c *Client) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	params := map[string]any{"chat_id": chatID}
	return request[*Chat](ctx, c, "getChat", params)
}

// DeleteMessage removes an uploaded document's message from the channel.
// Best effort: kept for undo support, not used by the upload path.
func (c *Client) DeleteMessage(ctx context.Context, chatID string, messageID int64) (bool, error) {
	params := map[string]any{"chat_id": chatID, "message_id": messageID}
	return request[bool](ctx, c, "deleteMessage", params)
}
