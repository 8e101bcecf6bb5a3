package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tickets/internal/infrastructure/storage"
)

func TestLocalStorageUpload(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, s.Upload(context.Background(), "job1_ABC123_receipt.pdf", []byte("%PDF-1.7")))

	data, err := os.ReadFile(filepath.Join(dir, "job1_ABC123_receipt.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}

func TestLocalStorageConfinesPaths(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, s.Upload(context.Background(), "../escape.pdf", []byte("x")))

	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err, "file must land inside the storage dir")
}
