// Package archive stores rendered reports and exports outside the database.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSArchive implements secondary.ReportArchive on the local filesystem.
// Keys map to relative paths under root. Existing files are never replaced.
type FSArchive struct {
	root string
}

// NewFSArchive returns an archive rooted at root, creating it if needed.
func NewFSArchive(root string) (*FSArchive, error) {
	if root == "" {
		return nil, fmt.Errorf("archive directory required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &FSArchive{root: root}, nil
}

// Put writes body to root/key and returns the file path.
func (a *FSArchive) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(a.root, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	return path, nil
}

// sanitizeKey rejects keys that are empty, absolute or escape the root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key %q", key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return clean, nil
}
