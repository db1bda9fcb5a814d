package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tendant/media-share/pkg/mediashare"
)

// Repository implements mediashare.Repository using in-memory storage.
//
// WithTx serializes transactions behind the repository's write lock and
// snapshots the full state before running the closure, so a failed
// transaction restores every record it touched and a concurrent reader
// never observes a half-applied account/item change.
type Repository struct {
	mu    sync.RWMutex
	state *state
}

// state holds all records. Accounts and items are stored as private copies;
// nothing hands out a pointer into these maps.
type state struct {
	accounts map[uuid.UUID]*mediashare.Account
	items    map[uuid.UUID]*mediashare.Item
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		state: &state{
			accounts: make(map[uuid.UUID]*mediashare.Account),
			items:    make(map[uuid.UUID]*mediashare.Item),
		},
	}
}

func copyAccount(a *mediashare.Account) *mediashare.Account {
	accountCopy := *a
	accountCopy.OwnedItems = append([]uuid.UUID(nil), a.OwnedItems...)
	return &accountCopy
}

func copyItem(i *mediashare.Item) *mediashare.Item {
	itemCopy := *i
	return &itemCopy
}

func (s *state) clone() *state {
	cloned := &state{
		accounts: make(map[uuid.UUID]*mediashare.Account, len(s.accounts)),
		items:    make(map[uuid.UUID]*mediashare.Item, len(s.items)),
	}
	for id, account := range s.accounts {
		cloned.accounts[id] = copyAccount(account)
	}
	for id, item := range s.items {
		cloned.items[id] = copyItem(item)
	}
	return cloned
}

// Account operations

func (s *state) createAccount(account *mediashare.Account) error {
	s.accounts[account.ID] = copyAccount(account)
	return nil
}

func (s *state) getAccount(id uuid.UUID) (*mediashare.Account, error) {
	account, exists := s.accounts[id]
	if !exists {
		return nil, mediashare.ErrAccountNotFound
	}
	return copyAccount(account), nil
}

func (s *state) updateAccount(account *mediashare.Account) error {
	if _, exists := s.accounts[account.ID]; !exists {
		return mediashare.ErrAccountNotFound
	}
	s.accounts[account.ID] = copyAccount(account)
	return nil
}

func (s *state) listAccounts() ([]*mediashare.Account, error) {
	result := make([]*mediashare.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		result = append(result, copyAccount(account))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Item operations

func (s *state) createItem(item *mediashare.Item) error {
	// The owner must exist at creation time
	if _, exists := s.accounts[item.OwnerID]; !exists {
		return mediashare.ErrAccountNotFound
	}
	s.items[item.ID] = copyItem(item)
	return nil
}

func (s *state) getItem(id uuid.UUID) (*mediashare.Item, error) {
	item, exists := s.items[id]
	if !exists {
		return nil, mediashare.ErrItemNotFound
	}
	return copyItem(item), nil
}

func (s *state) updateItem(item *mediashare.Item) error {
	if _, exists := s.items[item.ID]; !exists {
		return mediashare.ErrItemNotFound
	}
	s.items[item.ID] = copyItem(item)
	return nil
}

func (s *state) deleteItem(id uuid.UUID) error {
	if _, exists := s.items[id]; !exists {
		return mediashare.ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *state) listItemsByOwner(ownerID uuid.UUID) ([]*mediashare.Item, error) {
	account, exists := s.accounts[ownerID]
	if !exists {
		return nil, mediashare.ErrAccountNotFound
	}

	// The account's membership set is authoritative for what it owns.
	result := make([]*mediashare.Item, 0, len(account.OwnedItems))
	for _, itemID := range account.OwnedItems {
		if item, exists := s.items[itemID]; exists {
			result = append(result, copyItem(item))
		}
	}
	return result, nil
}

// Locked pass-throughs

func (r *Repository) CreateAccount(ctx context.Context, account *mediashare.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.createAccount(account)
}

func (r *Repository) GetAccount(ctx context.Context, id uuid.UUID) (*mediashare.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.getAccount(id)
}

func (r *Repository) UpdateAccount(ctx context.Context, account *mediashare.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.updateAccount(account)
}

func (r *Repository) ListAccounts(ctx context.Context) ([]*mediashare.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.listAccounts()
}

func (r *Repository) CreateItem(ctx context.Context, item *mediashare.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.createItem(item)
}

func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*mediashare.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.getItem(id)
}

func (r *Repository) UpdateItem(ctx context.Context, item *mediashare.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.updateItem(item)
}

func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.deleteItem(id)
}

func (r *Repository) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*mediashare.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.listItemsByOwner(ownerID)
}

// WithTx executes fn while holding the write lock. The pre-transaction
// state is kept aside; if fn fails, the snapshot is swapped back so no
// write made inside the closure survives.
func (r *Repository) WithTx(ctx context.Context, fn func(tx mediashare.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.state.clone()
	if err := fn(&txRepository{state: r.state}); err != nil {
		r.state = snapshot
		return err
	}
	return nil
}

// txRepository operates on the shared state without locking; the
// transaction owner already holds the write lock.
type txRepository struct {
	state *state
}

func (t *txRepository) CreateAccount(ctx context.Context, account *mediashare.Account) error {
	return t.state.createAccount(account)
}

func (t *txRepository) GetAccount(ctx context.Context, id uuid.UUID) (*mediashare.Account, error) {
	return t.state.getAccount(id)
}

func (t *txRepository) UpdateAccount(ctx context.Context, account *mediashare.Account) error {
	return t.state.updateAccount(account)
}

func (t *txRepository) ListAccounts(ctx context.Context) ([]*mediashare.Account, error) {
	return t.state.listAccounts()
}

func (t *txRepository) CreateItem(ctx context.Context, item *mediashare.Item) error {
	return t.state.createItem(item)
}

func (t *txRepository) GetItem(ctx context.Context, id uuid.UUID) (*mediashare.Item, error) {
	return t.state.getItem(id)
}

func (t *txRepository) UpdateItem(ctx context.Context, item *mediashare.Item) error {
	return t.state.updateItem(item)
}

func (t *txRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return t.state.deleteItem(id)
}

func (t *txRepository) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*mediashare.Item, error) {
	return t.state.listItemsByOwner(ownerID)
}

// WithTx inside a transaction joins the enclosing one.
func (t *txRepository) WithTx(ctx context.Context, fn func(tx mediashare.Repository) error) error {
	return fn(t)
}
