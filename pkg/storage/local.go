package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore serves assets from a directory on disk
type LocalStore struct {
	root string
}

// NewLocalStore resolves dir to an absolute path once so every lookup can
// be checked against it.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{root: abs}, nil
}

// Root returns the absolute asset directory
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Open(_ context.Context, name string) (*Asset, error) {
	path := filepath.Join(s.root, name)
	if !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return nil, ErrForbidden
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, ErrNotFound
	}

	return &Asset{Body: f, Size: info.Size(), ModTime: info.ModTime()}, nil
}
