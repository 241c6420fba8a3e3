package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

func TestFileStorePlain(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"), "", nil))
}

func TestFileStoreEncrypted(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "session.bin"), "correct horse", nil))
}

func TestFileStoreEncryptedIsOpaque(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	store := NewFileStore(path, "correct horse", nil)
	require.NoError(t, store.Save(context.Background(), sampleCredentials()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "admin")
	assert.True(t, sealed(raw))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	require.NoError(t, NewFileStore(path, "right", nil).Save(context.Background(), sampleCredentials()))

	_, err := NewFileStore(path, "wrong", nil).Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCredentialStore(err))

	_, err = NewFileStore(path, "", nil).Load(context.Background())
	assert.True(t, apperrors.IsCredentialStore(err))
}

func TestFileStoreHalfRecordLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"orphan"}`), 0o600))

	got, err := NewFileStore(path, "", nil).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestFileStoreCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":`), 0o600))

	_, err := NewFileStore(path, "", nil).Load(context.Background())
	assert.True(t, apperrors.IsCredentialStore(err))
}

func TestFileStoreLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "session.json"), "", nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(context.Background(), sampleCredentials()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "session.json", entries[0].Name())
}

func TestFileStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFileStore(filepath.Join(t.TempDir(), "s.json"), "", nil).Save(ctx, sampleCredentials())
	assert.True(t, apperrors.IsCredentialStore(err))
}
