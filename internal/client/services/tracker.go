package services

import (
	"sync"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
)

// Tracker holds the in-memory progress state of the current upload batch.
// It is owned by the upload service: the service mutates it, everyone else
// reads snapshots. All methods are safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	items map[string]*models.UploadItem
	order []string
}

func NewTracker() *Tracker {
	return &Tracker{items: make(map[string]*models.UploadItem)}
}

// StartBatch replaces any previous state with pending entries for the given
// photo ids, preserving submission order.
func (t *Tracker) StartBatch(ids []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = make(map[string]*models.UploadItem, len(ids))
	t.order = make([]string, 0, len(ids))
	for _, id := range ids {
		t.items[id] = &models.UploadItem{PhotoID: id, Status: models.UploadStatusPending}
		t.order = append(t.order, id)
	}
}

// SetUploading marks the item active and resets its progress.
func (t *Tracker) SetUploading(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if item, ok := t.items[id]; ok {
		item.Status = models.UploadStatusUploading
		item.Progress = 0
		item.Error = ""
	}
}

// SetProgress records transfer progress for an active item.
func (t *Tracker) SetProgress(id string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if item, ok := t.items[id]; ok {
		item.Progress = percent
	}
}

// SetRetryCount records how many retries the item has consumed so far.
func (t *Tracker) SetRetryCount(id string, retries int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if item, ok := t.items[id]; ok {
		item.RetryCount = retries
	}
}

// SetCompleted marks the item done at full progress.
func (t *Tracker) SetCompleted(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if item, ok := t.items[id]; ok {
		item.Status = models.UploadStatusCompleted
		item.Progress = 100
		item.Error = ""
	}
}

// SetFailed marks the item failed with a human-readable reason and resets
// its progress.
func (t *Tracker) SetFailed(id string, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if item, ok := t.items[id]; ok {
		item.Status = models.UploadStatusFailed
		item.Progress = 0
		item.Error = reason
	}
}

// Cancel removes the tracked state for one item. It does not abort an
// in-flight transfer; the transfer finishes and its result is discarded.
func (t *Tracker) Cancel(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.items, id)
}

// Get returns a copy of one tracked item.
func (t *Tracker) Get(id string) (models.UploadItem, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.items[id]
	if !ok {
		return models.UploadItem{}, false
	}
	return *item, true
}

// Snapshot returns copies of all tracked items in submission order,
// skipping cancelled ones.
func (t *Tracker) Snapshot() []models.UploadItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.UploadItem, 0, len(t.items))
	for _, id := range t.order {
		if item, ok := t.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out
}

// Stats recomputes the aggregate view from the tracked items. Current is
// the 1-based position of the uploading item among tracked items, 0 when
// nothing is in flight.
func (t *Tracker) Stats() models.UploadStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var stats models.UploadStats
	pos := 0
	for _, id := range t.order {
		item, ok := t.items[id]
		if !ok {
			continue
		}
		pos++
		stats.Total++
		switch item.Status {
		case models.UploadStatusCompleted:
			stats.Completed++
		case models.UploadStatusFailed:
			stats.Failed++
		case models.UploadStatusUploading:
			stats.Current = pos
			stats.CurrentProgress = item.Progress
		}
	}
	return stats
}

// Clear drops all tracked state.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = make(map[string]*models.UploadItem)
	t.order = nil
}
