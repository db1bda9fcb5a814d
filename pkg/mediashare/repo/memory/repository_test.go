package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/media-share/pkg/mediashare"
)

func newAccount() *mediashare.Account {
	now := time.Now().UTC()
	return &mediashare.Account{
		ID:         uuid.New(),
		Name:       "Owner",
		Email:      "owner@example.com",
		OwnedItems: []uuid.UUID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func newItem(ownerID uuid.UUID) *mediashare.Item {
	now := time.Now().UTC()
	return &mediashare.Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       "Title",
		Description: "A description.",
		AssetKey:    "assets/ab/cdef",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestAccountCRUD(t *testing.T) {
	repo := New()
	ctx := context.Background()

	account := newAccount()
	require.NoError(t, repo.CreateAccount(ctx, account))

	fetched, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, fetched.ID)
	assert.Equal(t, account.Name, fetched.Name)

	fetched.Name = "Renamed"
	require.NoError(t, repo.UpdateAccount(ctx, fetched))

	again, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)

	_, err = repo.GetAccount(ctx, uuid.New())
	assert.ErrorIs(t, err, mediashare.ErrAccountNotFound)

	err = repo.UpdateAccount(ctx, newAccount())
	assert.ErrorIs(t, err, mediashare.ErrAccountNotFound)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestItemCRUD(t *testing.T) {
	repo := New()
	ctx := context.Background()

	account := newAccount()
	require.NoError(t, repo.CreateAccount(ctx, account))

	item := newItem(account.ID)
	require.NoError(t, repo.CreateItem(ctx, item))

	fetched, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, fetched.Title)

	fetched.Title = "Changed"
	require.NoError(t, repo.UpdateItem(ctx, fetched))

	again, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", again.Title)

	require.NoError(t, repo.DeleteItem(ctx, item.ID))
	_, err = repo.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, mediashare.ErrItemNotFound)

	err = repo.DeleteItem(ctx, item.ID)
	assert.ErrorIs(t, err, mediashare.ErrItemNotFound)
}

func TestCreateItemRequiresOwner(t *testing.T) {
	repo := New()
	ctx := context.Background()

	err := repo.CreateItem(ctx, newItem(uuid.New()))
	assert.ErrorIs(t, err, mediashare.ErrAccountNotFound)
}

func TestCopyIsolation(t *testing.T) {
	repo := New()
	ctx := context.Background()

	account := newAccount()
	require.NoError(t, repo.CreateAccount(ctx, account))

	item := newItem(account.ID)
	require.NoError(t, repo.CreateItem(ctx, item))

	// Mutating a returned account must not leak into the stored record.
	fetched, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	fetched.Name = "Mutated"
	fetched.OwnedItems = append(fetched.OwnedItems, uuid.New())

	stored, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Owner", stored.Name)
	assert.Empty(t, stored.OwnedItems)

	// Same for items.
	fetchedItem, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	fetchedItem.Title = "Mutated"

	storedItem, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title", storedItem.Title)
}

func TestListItemsByOwnerFollowsMembership(t *testing.T) {
	repo := New()
	ctx := context.Background()

	account := newAccount()
	require.NoError(t, repo.CreateAccount(ctx, account))

	owned := newItem(account.ID)
	require.NoError(t, repo.CreateItem(ctx, owned))

	// An item that exists but is not in the membership set is not listed.
	stray := newItem(account.ID)
	require.NoError(t, repo.CreateItem(ctx, stray))

	account.OwnedItems = []uuid.UUID{owned.ID}
	require.NoError(t, repo.UpdateAccount(ctx, account))

	items, err := repo.ListItemsByOwner(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, owned.ID, items[0].ID)

	_, err = repo.ListItemsByOwner(ctx, uuid.New())
	assert.ErrorIs(t, err, mediashare.ErrAccountNotFound)
}

func TestWithTxCommit(t *testing.T) {
	repo := New()
	ctx := context.Background()

	account := newAccount()
	require.NoError(t, repo.CreateAccount(ctx, account))

	item := newItem(account.ID)
	err := repo.WithTx(ctx, func(tx mediashare.Repository) error {
		if err := tx.CreateItem(ctx, item); err != nil {
			return err
		}
		acct, err := tx.GetAccount(ctx, account.ID)
		if err != nil {
			return err
		}
		acct.OwnedItems = append(acct.OwnedItems, item.ID)
		return tx.UpdateAccount(ctx, acct)
	})
	require.NoError(t, err)

	fetched, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, fetched.ID)

	acct, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, acct.Owns(item.ID))
}

func TestWithTxRollback(t *testing.T) {
	repo := New()
	ctx := context.Background()

	account := newAccount()
	require.NoError(t, repo.CreateAccount(ctx, account))

	existing := newItem(account.ID)
	require.NoError(t, repo.CreateItem(ctx, existing))
	account.OwnedItems = []uuid.UUID{existing.ID}
	require.NoError(t, repo.UpdateAccount(ctx, account))

	intruder := newItem(account.ID)
	err := repo.WithTx(ctx, func(tx mediashare.Repository) error {
		if err := tx.CreateItem(ctx, intruder); err != nil {
			return err
		}
		if err := tx.DeleteItem(ctx, existing.ID); err != nil {
			return err
		}
		acct, err := tx.GetAccount(ctx, account.ID)
		if err != nil {
			return err
		}
		acct.OwnedItems = []uuid.UUID{intruder.ID}
		if err := tx.UpdateAccount(ctx, acct); err != nil {
			return err
		}
		return fmt.Errorf("simulated failure after all writes")
	})
	require.Error(t, err)

	// Every write inside the transaction is rolled back.
	_, err = repo.GetItem(ctx, intruder.ID)
	assert.ErrorIs(t, err, mediashare.ErrItemNotFound)

	restored, err := repo.GetItem(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, restored.ID)

	acct, err := repo.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{existing.ID}, acct.OwnedItems)
}
