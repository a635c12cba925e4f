package telegram

import "fmt"

// response is the Bot API envelope shared by every method.
type response[T any] struct {
	OK          bool   `json:"ok"`
	Result      T      `json:"result,omitempty"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// User identifies the bot account (getMe result).
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Chat describes the destination channel or group (getChat result).
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"` // private, group, supergroup, channel
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

// Document is the remote handle assigned to an uploaded file.
type Document struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileName     string `json:"file_name,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
}

// Message is the sendDocument result; MessageID is kept for later deletion.
type Message struct {
	MessageID int64     `json:"message_id"`
	Date      int64     `json:"date"`
	Document  *Document `json:"document,omitempty"`
	Caption   string    `json:"caption,omitempty"`
}

// File is the getFile result; FilePath is the token needed for download.
type File struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileSize     int64  `json:"file_size,omitempty"`
	FilePath     string `json:"file_path,omitempty"`
}

// APIError is the uniform failure shape for every client operation:
// API-level failures carry the error_code from the response body, transport
// and parsing failures carry Code 0 and the underlying message. The backoff
// policy classifies retriability from this one type.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	if e.Code == 0 {
		return "telegram: " + e.Description
	}
	return fmt.Sprintf("telegram: %s (error_code=%d)", e.Description, e.Code)
}
