package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/rafeekpro/speecher/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *TranscriptStorage {
	t.Helper()
	storage, err := NewTranscriptStorage(filepath.Join(t.TempDir(), "test.db"), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestStoreAndGet(t *testing.T) {
	storage := newTestStorage(t)

	id, err := storage.Store(&TranscriptRecord{
		Format:    "aws",
		Content:   "spk_0: Hi.\nspk_1: Hello.",
		LineCount: 2,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := storage.GetByUUID(id)
	require.NoError(t, err)
	require.Equal(t, "aws", record.Format)
	require.Equal(t, "spk_0: Hi.\nspk_1: Hello.", record.Content)
	require.Equal(t, 2, record.LineCount)
	require.False(t, record.CreatedAt.IsZero())
}

func TestGetByUUIDNotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetByUUID("does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	storage := newTestStorage(t)

	for i := 0; i < 3; i++ {
		_, err := storage.Store(&TranscriptRecord{
			Format:    "gcp",
			Content:   "Hi",
			LineCount: 1,
		})
		require.NoError(t, err)
	}

	records, err := storage.List(2, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = storage.List(10, 2)
	require.NoError(t, err)
	require.Len(t, records, 1)
}
