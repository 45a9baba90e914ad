package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRoundtrip(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	locator, err := store.Write("report.pdf", []byte("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", locator)

	ok, err := store.Exists(locator)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := store.Read(locator)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), data)

	require.NoError(t, store.Delete(locator))

	ok, err = store.Exists(locator)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalReadMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("never-written.pdf")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalDeleteMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("never-written.pdf"))
}

func TestLocalCreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocal(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalRejectsEmptyBase(t *testing.T) {
	_, err := NewLocal("   ")
	assert.Error(t, err)
}

func TestLocalWriteStripsPathComponents(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocal(base)
	require.NoError(t, err)

	locator, err := store.Write("../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", locator)

	// The file landed inside the base directory, nowhere else.
	_, err = os.Stat(filepath.Join(base, "passwd"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "..", "..", "etc", "passwd"))
	assert.True(t, os.IsNotExist(err))
}
