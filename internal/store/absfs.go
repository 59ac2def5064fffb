package store

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/absfs/absfs"

	"gibberish/internal/gibberish"
)

// AbsFSStore keeps files in an absfs.FileSystem. Relative names are resolved
// against the filesystem root.
type AbsFSStore struct {
	fsys absfs.FileSystem
}

// NewAbsFSStore creates a store on top of fsys.
func NewAbsFSStore(fsys absfs.FileSystem) *AbsFSStore {
	return &AbsFSStore{fsys: fsys}
}

func (s *AbsFSStore) path(name string) string {
	return path.Clean("/" + name)
}

// Exists reports whether name is present.
func (s *AbsFSStore) Exists(name string) (bool, error) {
	_, err := s.fsys.Stat(s.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", name, err)
}

// Get copies the content of name to w. Only regular files can be read.
func (s *AbsFSStore) Get(name string, w io.Writer) error {
	p := s.path(name)

	info, err := s.fsys.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &gibberish.NotFoundError{Path: name}
		}
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if err := checkRegular(name, info.Mode()); err != nil {
		return err
	}

	f, err := s.fsys.Open(p)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return nil
}

// Put writes size bytes from r to a temp file next to name and renames it
// into place.
func (s *AbsFSStore) Put(name string, r io.Reader, size int64) error {
	destPath := s.path(name)
	if info, err := s.fsys.Stat(destPath); err == nil && info.IsDir() {
		return fmt.Errorf("cannot overwrite directory: %s", name)
	}

	tmpPath := path.Join(path.Dir(destPath), ".gibberish-tmp-"+path.Base(destPath))
	f, err := s.fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	success := false
	defer func() {
		if !success {
			s.fsys.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := s.fsys.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// ValidateSetup verifies that the filesystem root is a directory.
func (s *AbsFSStore) ValidateSetup() error {
	info, err := s.fsys.Stat("/")
	if err != nil {
		return fmt.Errorf("store root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store root is not a directory")
	}
	return nil
}

var _ gibberish.Store = (*AbsFSStore)(nil)
