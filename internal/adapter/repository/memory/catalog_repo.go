package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/simaogato/inventory-ledger/internal/domain"
)

// catalogRepository implements domain.CatalogRepository in process memory
// The lock guards the maps only; the objects themselves are mutated under the ledger Manager's lock
type catalogRepository struct {
	mu       sync.RWMutex
	items    map[string]*domain.Item
	storages map[string]*domain.Storage
}

// NewCatalogRepository creates an empty catalog
func NewCatalogRepository() domain.CatalogRepository {
	return &catalogRepository{
		items:    make(map[string]*domain.Item),
		storages: make(map[string]*domain.Storage),
	}
}

// CreateItem adds a new item
func (r *catalogRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrAlreadyExists)
	}
	r.items[item.ID] = item
	return nil
}

// CreateStorage adds a new storage
func (r *catalogRepository) CreateStorage(ctx context.Context, storage *domain.Storage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.storages[storage.ID]; ok {
		return fmt.Errorf("storage %s: %w", storage.ID, domain.ErrAlreadyExists)
	}
	r.storages[storage.ID] = storage
	return nil
}

// GetItem retrieves an item by its ID
func (r *catalogRepository) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, domain.ErrItemNotFound)
	}
	return item, nil
}

// GetStorage retrieves a storage by its ID
func (r *catalogRepository) GetStorage(ctx context.Context, id string) (*domain.Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	storage, ok := r.storages[id]
	if !ok {
		return nil, fmt.Errorf("storage %q: %w", id, domain.ErrStorageNotFound)
	}
	return storage, nil
}

// ListItems retrieves all items ordered by ID
func (r *catalogRepository) ListItems(ctx context.Context) ([]*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	items := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ListStorages retrieves all storages ordered by ID
func (r *catalogRepository) ListStorages(ctx context.Context) ([]*domain.Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	storages := make([]*domain.Storage, 0, len(r.storages))
	for _, storage := range r.storages {
		storages = append(storages, storage)
	}
	r.mu.RUnlock()

	sort.Slice(storages, func(i, j int) bool { return storages[i].ID < storages[j].ID })
	return storages, nil
}
