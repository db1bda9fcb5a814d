package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/tendant/media-share/pkg/mediashare"
)

// Backend is an in-memory implementation of the mediashare.BlobStore
// interface
type Backend struct {
	mu     sync.RWMutex
	assets map[string][]byte
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		assets: make(map[string][]byte),
	}
}

// Upload stores asset bytes in memory
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.assets[key] = data
	return nil
}

// Download retrieves asset bytes from memory
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.assets[key]
	if !exists {
		return nil, errors.New("asset not found")
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes an asset from memory
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.assets[key]; !exists {
		return errors.New("asset not found")
	}

	delete(b.assets, key)
	return nil
}

// GetDownloadURL returns an error; the in-memory backend has no URL access
func (b *Backend) GetDownloadURL(ctx context.Context, key string, downloadFilename string) (string, error) {
	return "", errors.New("direct download required for memory backend")
}

// GetAssetMeta retrieves metadata for an asset in memory
func (b *Backend) GetAssetMeta(ctx context.Context, key string) (*mediashare.AssetMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.assets[key]
	if !exists {
		return nil, errors.New("asset not found")
	}

	return &mediashare.AssetMeta{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: "application/octet-stream",
	}, nil
}

// Exists reports whether an asset is stored under key. Test helper.
func (b *Backend) Exists(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.assets[key]
	return exists
}
