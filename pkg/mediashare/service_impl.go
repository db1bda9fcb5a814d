package mediashare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/media-share/pkg/mediashare/assetkey"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	eventSink  EventSink
	keyGen     assetkey.Generator
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the asset storage backend
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithAssetKeyGenerator sets the asset key generation strategy
func WithAssetKeyGenerator(gen assetkey.Generator) Option {
	return func(s *service) {
		s.keyGen = gen
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		keyGen: assetkey.NewShardedGenerator(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// validateItemFields checks title and description before any mutation is
// attempted.
func validateItemFields(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(description) < 5 {
		return ErrShortDescription
	}
	return nil
}

// Item operations

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if err := validateItemFields(req.Title, req.Description); err != nil {
		return nil, err
	}
	if req.Asset == nil {
		return nil, ErrMissingAsset
	}

	// Resolve the owner before storing the asset so an unknown owner
	// leaves nothing behind in the blob store.
	if _, err := s.repository.GetAccount(ctx, req.OwnerID); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, &AccountError{AccountID: req.OwnerID, Op: "resolve", Err: err}
	}

	itemID := uuid.New()
	assetKey := s.keyGen.GenerateKey(itemID, req.FileName)

	if err := s.blobStore.Upload(ctx, assetKey, req.Asset); err != nil {
		return nil, &ItemError{
			ItemID: itemID,
			Op:     "create",
			Err:    &StorageError{Key: assetKey, Op: "upload", Err: err},
		}
	}

	now := time.Now().UTC()
	item := &Item{
		ID:          itemID,
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		AssetKey:    assetKey,
		MimeType:    req.MimeType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Item record and owner membership change as one atomic unit.
	err := s.repository.WithTx(ctx, func(tx Repository) error {
		if err := tx.CreateItem(ctx, item); err != nil {
			return err
		}
		account, err := tx.GetAccount(ctx, req.OwnerID)
		if err != nil {
			return err
		}
		account.OwnedItems = append(account.OwnedItems, item.ID)
		account.UpdatedAt = now
		return tx.UpdateAccount(ctx, account)
	})
	if err != nil {
		// The asset was stored before the transaction; compensate so a
		// failed create leaves no orphan behind.
		if delErr := s.blobStore.Delete(ctx, assetKey); delErr != nil {
			slog.Warn("failed to clean up asset after aborted create",
				"asset_key", assetKey, "error", delErr)
		}
		return nil, &ItemError{ItemID: item.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemCreated(ctx, item); err != nil {
			slog.Warn("item created event failed", "item_id", item.ID, "error", err)
		}
	}

	return item, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repository.GetItem(ctx, id)
}

func (s *service) UpdateItem(ctx context.Context, req UpdateItemRequest) (*Item, error) {
	if err := validateItemFields(req.Title, req.Description); err != nil {
		return nil, err
	}

	item, err := s.repository.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// Only title and description are updatable; owner and asset key stay
	// as loaded.
	item.Title = req.Title
	item.Description = req.Description
	item.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateItem(ctx, item); err != nil {
		return nil, &ItemError{ItemID: item.ID, Op: "update", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemUpdated(ctx, item); err != nil {
			slog.Warn("item updated event failed", "item_id", item.ID, "error", err)
		}
	}

	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.repository.GetItem(ctx, id)
	if err != nil {
		return err
	}

	// Remove the item record and the owner's membership entry together.
	// The asset is released only after this unit commits: a crash in
	// between leaves an orphaned file, never a dangling record.
	err = s.repository.WithTx(ctx, func(tx Repository) error {
		if err := tx.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		account, err := tx.GetAccount(ctx, item.OwnerID)
		if err != nil {
			return err
		}
		kept := account.OwnedItems[:0]
		for _, ownedID := range account.OwnedItems {
			if ownedID != item.ID {
				kept = append(kept, ownedID)
			}
		}
		account.OwnedItems = kept
		account.UpdatedAt = time.Now().UTC()
		return tx.UpdateAccount(ctx, account)
	})
	if err != nil {
		return &ItemError{ItemID: item.ID, Op: "delete", Err: err}
	}

	if err := s.blobStore.Delete(ctx, item.AssetKey); err != nil {
		slog.Warn("failed to delete asset for removed item",
			"item_id", item.ID, "asset_key", item.AssetKey, "error", err)
	}

	if s.eventSink != nil {
		if err := s.eventSink.ItemDeleted(ctx, item.ID); err != nil {
			slog.Warn("item deleted event failed", "item_id", item.ID, "error", err)
		}
	}

	return nil
}

func (s *service) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error) {
	account, err := s.repository.GetAccount(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, &AccountError{AccountID: ownerID, Op: "resolve", Err: err}
	}

	if len(account.OwnedItems) == 0 {
		return nil, ErrNoItemsForOwner
	}

	return s.repository.ListItemsByOwner(ctx, ownerID)
}

// Asset access

func (s *service) DownloadAsset(ctx context.Context, itemID uuid.UUID) (io.ReadCloser, error) {
	item, err := s.repository.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	reader, err := s.blobStore.Download(ctx, item.AssetKey)
	if err != nil {
		return nil, &StorageError{Key: item.AssetKey, Op: "download", Err: err}
	}
	return reader, nil
}

func (s *service) GetAssetDownloadURL(ctx context.Context, itemID uuid.UUID) (string, error) {
	item, err := s.repository.GetItem(ctx, itemID)
	if err != nil {
		return "", err
	}

	url, err := s.blobStore.GetDownloadURL(ctx, item.AssetKey, path.Base(item.AssetKey))
	if err != nil {
		return "", &StorageError{Key: item.AssetKey, Op: "download_url", Err: err}
	}
	return url, nil
}

// Account operations

func (s *service) RegisterAccount(ctx context.Context, req RegisterAccountRequest) (*Account, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("account name is required")
	}

	now := time.Now().UTC()
	account := &Account{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		OwnedItems: []uuid.UUID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repository.CreateAccount(ctx, account); err != nil {
		return nil, &AccountError{AccountID: account.ID, Op: "register", Err: err}
	}

	return account, nil
}

func (s *service) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repository.GetAccount(ctx, id)
}

func (s *service) ListAccounts(ctx context.Context) ([]*Account, error) {
	return s.repository.ListAccounts(ctx)
}
