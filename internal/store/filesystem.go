package store

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gibberish/internal/gibberish"
)

// FileSystemStore reads and writes files on the local filesystem.
// Relative names are resolved against root; an empty root means the
// working directory, so names behave exactly like command-line paths.
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates a store rooted at root.
func NewFileSystemStore(root string) *FileSystemStore {
	return &FileSystemStore{root: root}
}

func (s *FileSystemStore) path(name string) string {
	if s.root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.root, name)
}

// Exists reports whether name is present.
func (s *FileSystemStore) Exists(name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", name, err)
}

// Get copies the content of name to w. Only regular files can be read.
func (s *FileSystemStore) Get(name string, w io.Writer) error {
	p := s.path(name)

	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &gibberish.NotFoundError{Path: name}
		}
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if err := checkRegular(name, info.Mode()); err != nil {
		return err
	}

	f, err := os.Open(p)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return nil
}

// Put writes size bytes from r to name using an atomic write (temp file + rename).
// An existing file keeps its permissions; new files are created 0644.
func (s *FileSystemStore) Put(name string, r io.Reader, size int64) error {
	destPath := s.path(name)

	perm := fs.FileMode(0644)
	if info, err := os.Stat(destPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("cannot overwrite directory: %s", name)
		}
		perm = info.Mode().Perm()
	}

	// Create temp file in the same directory to ensure atomic rename works
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".gibberish-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// ValidateSetup verifies that the root directory is accessible.
func (s *FileSystemStore) ValidateSetup() error {
	if s.root == "" {
		return nil
	}

	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("store root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store root is not a directory: %s", s.root)
	}
	return nil
}

// checkRegular rejects directories and special files.
func checkRegular(name string, mode fs.FileMode) error {
	switch {
	case mode.IsDir():
		return fmt.Errorf("cannot open directory as file: %s", name)
	case mode&os.ModeDevice != 0:
		return fmt.Errorf("device files not supported: %s", name)
	case mode&os.ModeNamedPipe != 0:
		return fmt.Errorf("named pipes not supported: %s", name)
	case mode&os.ModeSocket != 0:
		return fmt.Errorf("sockets not supported: %s", name)
	}
	return nil
}

// Compile-time check that FileSystemStore implements gibberish.Store interface
var _ gibberish.Store = (*FileSystemStore)(nil)
