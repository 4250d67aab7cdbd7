package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"MedAI_LandingSite/internal/export"
	"MedAI_LandingSite/internal/models"
	"MedAI_LandingSite/internal/storage"
	"MedAI_LandingSite/internal/variants"
)

func newMemoryStores(t *testing.T) *Stores {
	t.Helper()
	registry, err := variants.Load()
	require.NoError(t, err)
	s, err := NewStores(storage.NewMemoryKV(), registry, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func TestViews(t *testing.T) {
	s := newMemoryStores(t)
	views := s.Views()
	require.Contains(t, views, "demo-requests")
	require.Contains(t, views, "call-requests")

	demo := views["demo-requests"]
	assert.Equal(t, variants.Demo, demo.Variant().Key)
	_, total := demo.Records()
	assert.Equal(t, 0, total)

	_, _, err := demo.Export("csv")
	assert.True(t, errors.Is(err, export.ErrNothingToExport))
	_, _, err = demo.Export("xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	require.NoError(t, s.Demo.Append(models.SubmissionRecord{ID: "1", Name: "Dr. John Smith", Email: "john@clinic.nl"}))
	records, total := demo.Records()
	assert.Equal(t, 1, total)
	assert.Len(t, records, 1)

	data, n, err := demo.Export("json")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, string(data), "Dr. John Smith")

	header, rows := demo.Table()
	assert.Equal(t, "ID", header[0])
	require.Len(t, rows, 1)
	assert.Equal(t, "Dr. John Smith", rows[0][1])

	cleared, err := demo.Clear(func() bool { return false }, nil)
	require.NoError(t, err)
	assert.False(t, cleared)
	_, total = demo.Records()
	assert.Equal(t, 1, total)

	var snapshot []byte
	cleared, err = demo.Clear(func() bool { return true }, func(b []byte) error {
		snapshot = b
		return nil
	})
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Contains(t, string(snapshot), "Dr. John Smith")
	_, total = demo.Records()
	assert.Equal(t, 0, total)
}

func TestViews_ClearEmptySkipsArchive(t *testing.T) {
	s := newMemoryStores(t)
	called := false
	cleared, err := s.Views()["call-requests"].Clear(func() bool { return true }, func([]byte) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.False(t, called)
}
