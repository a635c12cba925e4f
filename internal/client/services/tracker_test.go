package services

import (
	"testing"

	"github.com/dmitrijs2005/photokeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartBatch(t *testing.T) {
	tr := NewTracker()
	tr.StartBatch([]string{"a", "b", "c"})

	items := tr.Snapshot()
	require.Len(t, items, 3)
	for i, id := range []string{"a", "b", "c"} {
		assert.Equal(t, id, items[i].PhotoID)
		assert.Equal(t, models.UploadStatusPending, items[i].Status)
		assert.Zero(t, items[i].Progress)
	}
}

func TestTracker_StartBatchReplacesPreviousState(t *testing.T) {
	tr := NewTracker()
	tr.StartBatch([]string{"a"})
	tr.SetCompleted("a")

	tr.StartBatch([]string{"b"})
	_, ok := tr.Get("a")
	assert.False(t, ok)

	item, ok := tr.Get("b")
	require.True(t, ok)
	assert.Equal(t, models.UploadStatusPending, item.Status)
}

func TestTracker_Lifecycle(t *testing.T) {
	tr := NewTracker()
	tr.StartBatch([]string{"a"})

	tr.SetUploading("a")
	tr.SetProgress("a", 40)
	item, _ := tr.Get("a")
	assert.Equal(t, models.UploadStatusUploading, item.Status)
	assert.Equal(t, 40, item.Progress)

	tr.SetFailed("a", "boom")
	item, _ = tr.Get("a")
	assert.Equal(t, models.UploadStatusFailed, item.Status)
	assert.Equal(t, "boom", item.Error)
	assert.Zero(t, item.Progress)

	// a retry attempt starts the item over
	tr.SetUploading("a")
	item, _ = tr.Get("a")
	assert.Equal(t, models.UploadStatusUploading, item.Status)
	assert.Empty(t, item.Error)

	tr.SetCompleted("a")
	item, _ = tr.Get("a")
	assert.Equal(t, models.UploadStatusCompleted, item.Status)
	assert.Equal(t, 100, item.Progress)
}

func TestTracker_Stats(t *testing.T) {
	tr := NewTracker()
	tr.StartBatch([]string{"a", "b", "c", "d"})

	tr.SetCompleted("a")
	tr.SetFailed("b", "boom")
	tr.SetUploading("c")
	tr.SetProgress("c", 60)

	stats := tr.Stats()
	assert.Equal(t, models.UploadStats{
		Total:           4,
		Completed:       1,
		Failed:          1,
		Current:         3,
		CurrentProgress: 60,
	}, stats)
}

func TestTracker_CancelRemovesItem(t *testing.T) {
	tr := NewTracker()
	tr.StartBatch([]string{"a", "b", "c"})
	tr.SetUploading("c")

	tr.Cancel("b")

	_, ok := tr.Get("b")
	assert.False(t, ok)

	items := tr.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].PhotoID)
	assert.Equal(t, "c", items[1].PhotoID)

	// positions shift after a cancellation
	stats := tr.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Current)
}

func TestTracker_MutatingUnknownIDIsNoop(t *testing.T) {
	tr := NewTracker()
	tr.StartBatch([]string{"a"})

	tr.SetProgress("ghost", 50)
	tr.SetCompleted("ghost")
	tr.Cancel("ghost")

	assert.Len(t, tr.Snapshot(), 1)
}

func TestTracker_Clear(t *testing.T) {
	tr := NewTracker()
	tr.StartBatch([]string{"a", "b"})
	tr.Clear()

	assert.Empty(t, tr.Snapshot())
	assert.Equal(t, models.UploadStats{}, tr.Stats())
}
