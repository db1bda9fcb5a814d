// Package postgres implements mediashare.Repository on PostgreSQL via pgx.
//
// Expected schema:
//
//	CREATE TABLE accounts (
//	    id UUID PRIMARY KEY,
//	    name TEXT NOT NULL,
//	    email TEXT NOT NULL DEFAULT '',
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE items (
//	    id UUID PRIMARY KEY,
//	    owner_id UUID NOT NULL REFERENCES accounts(id),
//	    title TEXT NOT NULL,
//	    description TEXT NOT NULL,
//	    asset_key TEXT NOT NULL,
//	    mime_type TEXT NOT NULL DEFAULT '',
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE account_items (
//	    account_id UUID NOT NULL REFERENCES accounts(id),
//	    item_id UUID NOT NULL REFERENCES items(id) ON DELETE CASCADE,
//	    PRIMARY KEY (account_id, item_id)
//	);
//
// account_items is the authoritative membership set; items.owner_id is the
// back reference. Both change inside one transaction via WithTx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/media-share/pkg/mediashare"
)

// DBTX is an interface that allows us to use either a connection pool or a
// transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(context.Context) (pgx.Tx, error)
}

// Repository implements mediashare.Repository using PostgreSQL
type Repository struct {
	db DBTX
	// inTx marks a repository bound to an open transaction; account reads
	// then take a row lock so concurrent membership changes against the
	// same account serialize.
	inTx bool
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "account") {
				return fmt.Errorf("account already exists")
			}
			if strings.Contains(pgErr.ConstraintName, "item") {
				return fmt.Errorf("item already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Account operations

func (r *Repository) CreateAccount(ctx context.Context, account *mediashare.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		account.ID, account.Name, account.Email, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return handlePostgresError("create account", err)
	}

	return nil
}

func (r *Repository) GetAccount(ctx context.Context, id uuid.UUID) (*mediashare.Account, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM accounts WHERE id = $1`
	if r.inTx {
		query += " FOR UPDATE"
	}

	var account mediashare.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Name, &account.Email,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mediashare.ErrAccountNotFound
		}
		return nil, handlePostgresError("get account", err)
	}

	ownedItems, err := r.getOwnedItems(ctx, id)
	if err != nil {
		return nil, err
	}
	account.OwnedItems = ownedItems

	return &account, nil
}

func (r *Repository) getOwnedItems(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT item_id FROM account_items WHERE account_id = $1`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, handlePostgresError("get owned items", err)
	}
	defer rows.Close()

	ownedItems := []uuid.UUID{}
	for rows.Next() {
		var itemID uuid.UUID
		if err := rows.Scan(&itemID); err != nil {
			return nil, handlePostgresError("get owned items", err)
		}
		ownedItems = append(ownedItems, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("get owned items", err)
	}

	return ownedItems, nil
}

// UpdateAccount writes the account record and reconciles the membership
// table against account.OwnedItems.
func (r *Repository) UpdateAccount(ctx context.Context, account *mediashare.Account) error {
	query := `
		UPDATE accounts SET name = $2, email = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		account.ID, account.Name, account.Email, account.UpdatedAt)
	if err != nil {
		return handlePostgresError("update account", err)
	}
	if tag.RowsAffected() == 0 {
		return mediashare.ErrAccountNotFound
	}

	if _, err := r.db.Exec(ctx,
		`DELETE FROM account_items WHERE account_id = $1`, account.ID); err != nil {
		return handlePostgresError("update account membership", err)
	}
	for _, itemID := range account.OwnedItems {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO account_items (account_id, item_id) VALUES ($1, $2)`,
			account.ID, itemID); err != nil {
			return handlePostgresError("update account membership", err)
		}
	}

	return nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]*mediashare.Account, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM accounts ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, handlePostgresError("list accounts", err)
	}
	defer rows.Close()

	var accounts []*mediashare.Account
	for rows.Next() {
		var account mediashare.Account
		if err := rows.Scan(&account.ID, &account.Name, &account.Email,
			&account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, handlePostgresError("list accounts", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list accounts", err)
	}

	for _, account := range accounts {
		ownedItems, err := r.getOwnedItems(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		account.OwnedItems = ownedItems
	}

	return accounts, nil
}

// Item operations

func (r *Repository) CreateItem(ctx context.Context, item *mediashare.Item) error {
	query := `
		INSERT INTO items (id, owner_id, title, description, asset_key, mime_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		item.ID, item.OwnerID, item.Title, item.Description,
		item.AssetKey, item.MimeType, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return handlePostgresError("create item", err)
	}

	return nil
}

func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*mediashare.Item, error) {
	query := `
		SELECT id, owner_id, title, description, asset_key, mime_type, created_at, updated_at
		FROM items WHERE id = $1`

	var item mediashare.Item
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Description,
		&item.AssetKey, &item.MimeType, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mediashare.ErrItemNotFound
		}
		return nil, handlePostgresError("get item", err)
	}

	return &item, nil
}

// UpdateItem writes only the mutable fields; owner_id and asset_key are
// fixed at creation.
func (r *Repository) UpdateItem(ctx context.Context, item *mediashare.Item) error {
	query := `
		UPDATE items SET title = $2, description = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		item.ID, item.Title, item.Description, item.UpdatedAt)
	if err != nil {
		return handlePostgresError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return mediashare.ErrItemNotFound
	}

	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return mediashare.ErrItemNotFound
	}

	return nil
}

func (r *Repository) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*mediashare.Item, error) {
	// Membership table drives the listing; items.owner_id alone is not
	// authoritative.
	query := `
		SELECT i.id, i.owner_id, i.title, i.description, i.asset_key, i.mime_type, i.created_at, i.updated_at
		FROM items i
		JOIN account_items ai ON ai.item_id = i.id
		WHERE ai.account_id = $1
		ORDER BY i.created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, handlePostgresError("list items by owner", err)
	}
	defer rows.Close()

	items := []*mediashare.Item{}
	for rows.Next() {
		var item mediashare.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Title, &item.Description,
			&item.AssetKey, &item.MimeType, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, handlePostgresError("list items by owner", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list items by owner", err)
	}

	return items, nil
}

// WithTx begins a transaction and runs fn against a transaction-bound
// repository. A nested call joins the enclosing transaction via a
// savepoint, which pgx creates on Tx.Begin.
func (r *Repository) WithTx(ctx context.Context, fn func(tx mediashare.Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Repository{db: tx, inTx: true}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
