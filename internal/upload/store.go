// Package upload stores uploaded statements as temporary files.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Store writes uploads into Dir. An empty Dir means os.TempDir().
type Store struct {
	Dir string
}

// File is one stored upload. Callers must defer Remove.
type File struct {
	Path string
	Size int64

	once sync.Once
	err  error
}

// Save copies r into a new, uniquely named file.
func (s Store) Save(r io.Reader) (*File, error) {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, "statement-"+uuid.NewString()+".pdf")
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(out, r)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	return &File{Path: path, Size: n}, nil
}

// Remove deletes the file. It is safe to call more than once and on a nil
// File; a file that is already gone is not an error.
func (f *File) Remove() error {
	if f == nil {
		return nil
	}
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.err = err
		}
	})
	return f.err
}
