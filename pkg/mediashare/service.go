package mediashare

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Service defines the main interface for the media-share library
type Service interface {
	// Item operations
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// Asset access
	DownloadAsset(ctx context.Context, itemID uuid.UUID) (io.ReadCloser, error)
	GetAssetDownloadURL(ctx context.Context, itemID uuid.UUID) (string, error)

	// Account operations
	RegisterAccount(ctx context.Context, req RegisterAccountRequest) (*Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
}
