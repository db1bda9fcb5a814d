package mediashare

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for account and item persistence.
//
// WithTx runs fn against a Repository whose writes form a single atomic
// unit: none of them are visible outside the transaction until fn returns
// nil, and a non-nil error discards all of them. Implementations must
// isolate the read-modify-write of an account's owned set so that a
// concurrent reader never observes an item recorded in the item store but
// missing from its owner's set, or vice versa.
type Repository interface {
	// Account operations
	CreateAccount(ctx context.Context, account *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error
	ListAccounts(ctx context.Context) ([]*Account, error)

	// Item operations
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// WithTx executes fn inside a transaction
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}

// BlobStore defines the interface for asset storage backends
type BlobStore interface {
	// Upload stores asset bytes under the given key
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download retrieves the asset stored under the given key
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the asset stored under the given key
	Delete(ctx context.Context, key string) error

	// GetDownloadURL returns a URL for downloading the asset, if the
	// backend supports URL access
	GetDownloadURL(ctx context.Context, key string, downloadFilename string) (string, error)

	// GetAssetMeta retrieves metadata for a stored asset
	GetAssetMeta(ctx context.Context, key string) (*AssetMeta, error)
}

// EventSink defines the interface for item lifecycle event handling
type EventSink interface {
	// ItemCreated is fired after an item is created
	ItemCreated(ctx context.Context, item *Item) error

	// ItemUpdated is fired after an item is updated
	ItemUpdated(ctx context.Context, item *Item) error

	// ItemDeleted is fired after an item is deleted
	ItemDeleted(ctx context.Context, itemID uuid.UUID) error
}

// AssetMeta contains metadata about a stored asset
type AssetMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
	Metadata    map[string]string
}
