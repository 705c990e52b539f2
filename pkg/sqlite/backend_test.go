package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

func TestOpenFeedbackLog(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenFeedbackLog(dir)
	require.NoError(t, err)
	defer log.Close()

	assert.FileExists(t, filepath.Join(dir, DatabaseFile))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, log.Append(types.FeedbackRecord{Timestamp: now, Text: "embedded"}))
	assert.ErrorIs(t, log.Append(types.FeedbackRecord{Timestamp: now, Text: " "}), types.ErrFeedbackEmpty)

	records, err := log.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "embedded", records[0].Text)
}
