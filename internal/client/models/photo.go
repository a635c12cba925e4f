// Package models contains the data structures stored in the local database
// and the transient structures passed between services.
package models

// Photo is a device photo tracked by the local database. RemoteID and
// MessageID stay empty until the photo has been uploaded; IsUploaded=true
// implies both are set.
type Photo struct {
	ID           string
	RemoteID     string
	FileName     string
	MimeType     string
	FileSize     int64
	DateAdded    int64
	DateModified int64
	IsUploaded   bool
	UploadedAt   int64
	MessageID    int64
	FolderID     string
	OCRText      string
	IsEncrypted  bool
}

// RemotePhoto is the durable record of a file that exists in the remote
// channel, keyed by the remote file id. Rows are append-only: one row per
// successful transfer, never updated by the upload pipeline.
type RemotePhoto struct {
	RemoteID        string
	FileName        string
	MimeType        string
	FileSize        int64
	UploadedAt      int64
	MessageID       int64
	ThumbnailCached bool
	FolderID        string
}

// MediaAsset is one member of an upload batch: a local file plus the
// identity it is tracked under in the photos table.
type MediaAsset struct {
	ID        string
	LocalPath string
	FileName  string
	MimeType  string
}
