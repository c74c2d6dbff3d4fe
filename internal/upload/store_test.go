package upload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store := Store{Dir: dir}

	f, err := store.Save(strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(f.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(f.Path), "statement-"))
	assert.Equal(t, ".pdf", filepath.Ext(f.Path))
	assert.Equal(t, int64(13), f.Size)

	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(data))

	require.NoError(t, f.Remove())
	require.NoError(t, f.Remove())
	_, err = os.Stat(f.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_UniqueNames(t *testing.T) {
	store := Store{Dir: t.TempDir()}

	a, err := store.Save(strings.NewReader("a"))
	require.NoError(t, err)
	defer a.Remove()
	b, err := store.Save(strings.NewReader("b"))
	require.NoError(t, err)
	defer b.Remove()

	assert.NotEqual(t, a.Path, b.Path)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestStore_SaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()

	f, err := Store{Dir: dir}.Save(failingReader{})

	assert.Nil(t, f)
	assert.ErrorContains(t, err, "connection reset")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_MissingDir(t *testing.T) {
	_, err := Store{Dir: filepath.Join(t.TempDir(), "missing")}.Save(strings.NewReader("x"))
	assert.ErrorContains(t, err, "create temp file")
}

func TestFile_RemoveNil(t *testing.T) {
	var f *File
	assert.NoError(t, f.Remove())
}
