package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"MedAI_LandingSite/internal/models"
)

func TestOpenStores_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	logger := zaptest.NewLogger(t)

	s, err := OpenStores(path, logger)
	require.NoError(t, err)
	assert.Equal(t, "demoRequests", s.Demo.Key())
	assert.Equal(t, "callRequests", s.Calls.Key())

	require.NoError(t, s.Demo.Append(models.SubmissionRecord{ID: "a", Name: "Dr. John Smith"}))
	require.NoError(t, s.Calls.Append(models.CallRequestRecord{ID: "b", Name: "Anna"}))
	require.NoError(t, s.Close())

	s, err = OpenStores(path, logger)
	require.NoError(t, err)
	defer s.Close()

	require.Len(t, s.Demo.ReadAll(), 1)
	require.Len(t, s.Calls.ReadAll(), 1)
	assert.Equal(t, "Dr. John Smith", s.Demo.ReadAll()[0].Name)
}
