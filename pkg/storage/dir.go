package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// fileExt is appended to every key to form its file name.
const fileExt = ".json"

// Dir is a KV that stores one file per key inside a directory.
// Each Set replaces the file atomically, so readers never see a torn value.
type Dir struct {
	path string
}

// NewDir returns a store rooted at path. The directory is created lazily
// on the first write.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the directory backing the store
func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, key+fileExt)
}

func (d *Dir) Get(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	data, err := os.ReadFile(d.file(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), nil
}

func (d *Dir) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(d.path, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := atomic.WriteFile(d.file(key), strings.NewReader(value)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (d *Dir) Remove(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	err := os.Remove(d.file(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
