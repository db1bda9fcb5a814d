package mediashare

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrOwnerNotFound indicates the referenced owning account was not found
	ErrOwnerNotFound = errors.New("owner account not found")

	// ErrItemNotFound indicates an item was not found
	ErrItemNotFound = errors.New("item not found")

	// ErrNoItemsForOwner indicates the account exists but owns no items
	ErrNoItemsForOwner = errors.New("no items found for owner")

	// ErrAccountNotFound indicates an account was not found
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmptyTitle indicates a missing or empty item title
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrShortDescription indicates a description below the minimum length
	ErrShortDescription = errors.New("description must be at least 5 characters")

	// ErrMissingAsset indicates item creation without an asset
	ErrMissingAsset = errors.New("asset is required")
)

// ItemError represents an internal failure of an item operation. Op is a
// stable kind: "create", "update", or "delete".
type ItemError struct {
	ItemID uuid.UUID
	Op     string
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item operation %s failed for item %s: %v", e.Op, e.ItemID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// AccountError represents an internal failure of an account operation
type AccountError struct {
	AccountID uuid.UUID
	Op        string
	Err       error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("account operation %s failed for account %s: %v", e.Op, e.AccountID, e.Err)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOwnerNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrNoItemsForOwner)
}

// IsValidation reports whether err is a pre-mutation validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrShortDescription) ||
		errors.Is(err, ErrMissingAsset)
}
