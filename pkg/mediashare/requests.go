package mediashare

import (
	"io"

	"github.com/google/uuid"
)

// Request DTOs

// CreateItemRequest contains parameters for publishing a new item. Asset
// carries the already-parsed upload; transport concerns (multipart parsing,
// size limits) belong to the caller.
type CreateItemRequest struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Asset       io.Reader
	FileName    string
	MimeType    string
}

// UpdateItemRequest contains parameters for updating an item's fields.
// Only title and description are updatable; owner and asset are fixed at
// creation.
type UpdateItemRequest struct {
	ItemID      uuid.UUID
	Title       string
	Description string
}

// RegisterAccountRequest contains parameters for registering an account
type RegisterAccountRequest struct {
	Name  string
	Email string
}
