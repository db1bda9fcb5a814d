package mediashare

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an authenticated entity that owns zero or more items.
//
// OwnedItems is the authoritative membership set: every ID it holds must
// refer to an Item whose OwnerID equals this account's ID. Membership is
// mutated only by the Service's item create/delete operations.
type Account struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	OwnedItems []uuid.UUID `json:"owned_items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Owns reports whether the account's membership set contains the given item.
func (a *Account) Owns(itemID uuid.UUID) bool {
	for _, id := range a.OwnedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// Item represents a published media entry.
//
// OwnerID and AssetKey are set at creation and never change afterwards;
// update operations touch only Title and Description.
type Item struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssetKey    string    `json:"asset_key"`
	MimeType    string    `json:"mime_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
