package domain

import (
	"context"
	"errors"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrStorageNotFound = errors.New("storage not found")
	ErrAlreadyExists   = errors.New("already exists")
)

// CatalogRepository defines the interface for looking up items and storages
// Implementations return live pointers: operations mutate the stored objects directly
type CatalogRepository interface {
	// CreateItem adds a new item
	CreateItem(ctx context.Context, item *Item) error

	// CreateStorage adds a new storage
	CreateStorage(ctx context.Context, storage *Storage) error

	// GetItem retrieves an item by its ID
	// Returns ErrItemNotFound if no item has that ID
	GetItem(ctx context.Context, id string) (*Item, error)

	// GetStorage retrieves a storage by its ID
	// Returns ErrStorageNotFound if no storage has that ID
	GetStorage(ctx context.Context, id string) (*Storage, error)

	// ListItems retrieves all items ordered by ID
	ListItems(ctx context.Context) ([]*Item, error)

	// ListStorages retrieves all storages ordered by ID
	ListStorages(ctx context.Context) ([]*Storage, error)
}
