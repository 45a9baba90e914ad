package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotExist reports a locator with no stored file behind it. Implementations
// return it (or wrap it) from Read so callers can tell a missing file from an
// I/O failure.
var ErrNotExist = errors.New("file does not exist")

// FileStore is the external collaborator that keeps document bytes. The
// locator returned by Write is opaque to callers; only the store that issued
// it can resolve it.
type FileStore interface {
	Write(name string, data []byte) (locator string, err error)
	Read(locator string) ([]byte, error)
	Delete(locator string) error
	Exists(locator string) (bool, error)
}

// Local stores files on disk under a base directory. Locators are file names
// relative to the base.
type Local struct {
	basePath string
}

// NewLocal creates the base directory if missing.
func NewLocal(basePath string) (*Local, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) Write(name string, data []byte) (string, error) {
	name = safeFilename(name)
	target := filepath.Join(l.basePath, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

func (l *Local) Read(locator string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, safeFilename(locator)))
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Delete removes the stored file. A locator that no longer resolves is not an
// error; the file being gone is the desired outcome.
func (l *Local) Delete(locator string) error {
	err := os.Remove(filepath.Join(l.basePath, safeFilename(locator)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (l *Local) Exists(locator string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.basePath, safeFilename(locator)))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// safeFilename strips any path components so a crafted name cannot escape the
// base directory.
func safeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "document"
	}
	return name
}
