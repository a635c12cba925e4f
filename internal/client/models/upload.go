package models

// UploadStatus is the lifecycle of one batch member.
type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "pending"
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusCompleted UploadStatus = "completed"
	UploadStatusFailed    UploadStatus = "failed"
)

// UploadItem is the tracked in-memory state of one batch member. Items are
// created when a batch starts, mutated only by the upload service, and
// cleared shortly after the batch settles.
type UploadItem struct {
	PhotoID    string
	Progress   int // 0..100
	Status     UploadStatus
	Error      string
	RetryCount int
}

// UploadStats is a projection recomputed from the tracked items on demand.
// Current is the 1-based index of the item currently uploading, 0 if none.
type UploadStats struct {
	Total           int
	Completed       int
	Failed          int
	Current         int
	CurrentProgress int
}
