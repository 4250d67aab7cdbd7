package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"MedAI_LandingSite/internal/models"
)

type brokenKV struct{}

func (brokenKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (brokenKV) Set(string, string) error          { return errors.New("quota exceeded") }
func (brokenKV) Delete(string) error               { return errors.New("read-only") }

func newDemoCollection(t *testing.T, kv KV) *Collection[models.SubmissionRecord] {
	t.Helper()
	return NewCollection[models.SubmissionRecord](kv, "demoRequests", zaptest.NewLogger(t))
}

func TestCollection_AppendKeepsOrder(t *testing.T) {
	c := newDemoCollection(t, NewMemoryKV())

	const n = 25
	for i := 0; i < n; i++ {
		require.NoError(t, c.Append(models.SubmissionRecord{ID: fmt.Sprintf("id-%02d", i), Name: fmt.Sprintf("user %d", i)}))
	}

	records := c.ReadAll()
	require.Len(t, records, n)
	seen := make(map[string]bool)
	for i, r := range records {
		assert.Equal(t, fmt.Sprintf("id-%02d", i), r.ID)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestCollection_ReadAllEmpty(t *testing.T) {
	c := newDemoCollection(t, NewMemoryKV())

	records := c.ReadAll()
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCollection_MalformedDataReadsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("demoRequests", `[{"id":"1",`))
	c := newDemoCollection(t, kv)

	assert.Empty(t, c.ReadAll())

	// Append overwrites the unreadable entry with a fresh collection
	require.NoError(t, c.Append(models.SubmissionRecord{ID: "2"}))
	records := c.ReadAll()
	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0].ID)
}

func TestCollection_StorageErrorsDegrade(t *testing.T) {
	c := newDemoCollection(t, brokenKV{})

	assert.Empty(t, c.ReadAll())
	assert.Error(t, c.Append(models.SubmissionRecord{ID: "1"}))

	cleared, err := c.ClearAll(func() bool { return true }, nil)
	assert.Error(t, err)
	assert.False(t, cleared)
}

func TestCollection_ClearAll(t *testing.T) {
	c := newDemoCollection(t, NewMemoryKV())
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Append(models.SubmissionRecord{ID: fmt.Sprint(i)}))
	}

	cleared, err := c.ClearAll(func() bool { return false }, nil)
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Len(t, c.ReadAll(), 3)

	cleared, err = c.ClearAll(nil, nil)
	require.NoError(t, err)
	assert.False(t, cleared)

	cleared, err = c.ClearAll(func() bool { return true }, nil)
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Empty(t, c.ReadAll())
}

func TestCollection_ClearAllArchivesSnapshot(t *testing.T) {
	c := newDemoCollection(t, NewMemoryKV())
	require.NoError(t, c.Append(models.SubmissionRecord{ID: "a"}))
	require.NoError(t, c.Append(models.SubmissionRecord{ID: "b"}))

	var archived []models.SubmissionRecord
	cleared, err := c.ClearAll(func() bool { return true }, func(records []models.SubmissionRecord) error {
		archived = records
		return nil
	})
	require.NoError(t, err)
	assert.True(t, cleared)
	require.Len(t, archived, 2)
	assert.Equal(t, "b", archived[1].ID)
	assert.Empty(t, c.ReadAll())
}

func TestCollection_ClearAllArchiveFailureKeepsRecords(t *testing.T) {
	c := newDemoCollection(t, NewMemoryKV())
	require.NoError(t, c.Append(models.SubmissionRecord{ID: "a"}))

	cleared, err := c.ClearAll(func() bool { return true }, func([]models.SubmissionRecord) error {
		return errors.New("disk full")
	})
	require.Error(t, err)
	assert.False(t, cleared)
	assert.Len(t, c.ReadAll(), 1)
}

// An append issued while the snapshot is being taken must end up either in
// the snapshot or in the collection after the clear, never in neither.
func TestCollection_ClearAllConcurrentAppendNotLost(t *testing.T) {
	c := newDemoCollection(t, NewMemoryKV())
	require.NoError(t, c.Append(models.SubmissionRecord{ID: "a"}))

	appended := make(chan error, 1)
	var archived []models.SubmissionRecord
	cleared, err := c.ClearAll(func() bool { return true }, func(records []models.SubmissionRecord) error {
		archived = records
		go func() { appended <- c.Append(models.SubmissionRecord{ID: "b"}) }()
		// give the writer a chance to run before the delete
		time.Sleep(20 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, cleared)
	require.NoError(t, <-appended)

	ids := map[string]bool{}
	for _, r := range archived {
		ids[r.ID] = true
	}
	for _, r := range c.ReadAll() {
		ids[r.ID] = true
	}
	assert.True(t, ids["a"])
	assert.True(t, ids["b"], "record appended during clear was lost")
}

func TestCollection_SQLiteBacked(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "site.db"))
	require.NoError(t, err)
	defer db.Close()

	kv := NewSQLiteKV(db)
	demo := newDemoCollection(t, kv)
	calls := NewCollection[models.CallRequestRecord](kv, "callRequests", zaptest.NewLogger(t))

	require.NoError(t, demo.Append(models.SubmissionRecord{ID: "a", Name: "Dr. John Smith"}))
	require.NoError(t, demo.Append(models.SubmissionRecord{ID: "b", Name: "Dr. Jane Doe"}))
	require.NoError(t, calls.Append(models.CallRequestRecord{ID: "c", Urgency: "urgent"}))

	assert.Len(t, demo.ReadAll(), 2)
	assert.Len(t, calls.ReadAll(), 1)

	// Reopen through a fresh collection to make sure the data is really persisted
	again := newDemoCollection(t, NewSQLiteKV(db))
	records := again.ReadAll()
	require.Len(t, records, 2)
	assert.Equal(t, "Dr. Jane Doe", records[1].Name)

	cleared, err := again.ClearAll(func() bool { return true }, nil)
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Empty(t, demo.ReadAll())
	assert.Len(t, calls.ReadAll(), 1)
}
