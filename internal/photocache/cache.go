// Package photocache keeps local copies of backend photos so worksheet and
// report pages can re-display them without re-downloading over a slow or
// flaky site connection.
package photocache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores photo files on disk keyed by their backend photo ID.
type Cache struct {
	basePath string
}

func New(basePath string) (*Cache, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo cache directory: %w", err)
	}
	return &Cache{basePath: basePath}, nil
}

// Put stores the photo bytes for an ID, replacing any cached variant with a
// different extension.
func (c *Cache) Put(_ context.Context, photoID int64, mimeType string, r io.Reader) error {
	if err := c.evict(photoID); err != nil {
		return err
	}

	filePath := filepath.Join(c.basePath, fileName(photoID, mimeType))
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close cache file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove cache file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove cache file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	return nil
}

// Get opens the cached photo for an ID. The bool result reports a cache hit;
// a miss is not an error.
func (c *Cache) Get(_ context.Context, photoID int64) (io.ReadCloser, string, bool, error) {
	matches, err := filepath.Glob(filepath.Join(c.basePath, fmt.Sprintf("photo_%d.*", photoID)))
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to scan photo cache: %w", err)
	}
	if len(matches) == 0 {
		return nil, "", false, nil
	}

	f, err := os.Open(matches[0])
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", false, nil
		}
		return nil, "", false, fmt.Errorf("failed to open cache file: %w", err)
	}
	return f, extToMimeType(matches[0]), true, nil
}

// Evict removes any cached variant of the photo. Evicting an uncached ID is a
// no-op.
func (c *Cache) Evict(_ context.Context, photoID int64) error {
	return c.evict(photoID)
}

func (c *Cache) evict(photoID int64) error {
	matches, err := filepath.Glob(filepath.Join(c.basePath, fmt.Sprintf("photo_%d.*", photoID)))
	if err != nil {
		return fmt.Errorf("failed to scan photo cache: %w", err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to evict cached photo: %w", err)
		}
	}
	return nil
}

func fileName(photoID int64, mimeType string) string {
	return fmt.Sprintf("photo_%d%s", photoID, mimeTypeToExt(mimeType))
}

func mimeTypeToExt(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
