package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/inventory-ledger/internal/domain"
)

// CatalogSeeder handles seeding of the item and storage catalog
// Seeded counts and prices bypass the ledger, so they are not undoable
type CatalogSeeder struct {
	repo domain.CatalogRepository
}

// NewCatalogSeeder creates a new CatalogSeeder instance
func NewCatalogSeeder(repo domain.CatalogRepository) *CatalogSeeder {
	return &CatalogSeeder{
		repo: repo,
	}
}

// Seed ensures every given item and storage exists in the catalog
// Entries that already exist are left untouched
func (s *CatalogSeeder) Seed(ctx context.Context, items []*domain.Item, storages []*domain.Storage) error {
	for _, item := range items {
		_, err := s.repo.GetItem(ctx, item.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrItemNotFound) {
			return fmt.Errorf("failed to look up item %s: %w", item.ID, err)
		}

		// Validate before creating
		if err := item.Validate(); err != nil {
			return fmt.Errorf("invalid seed item %q: %w", item.ID, err)
		}

		if err := s.repo.CreateItem(ctx, item); err != nil {
			return err
		}
	}

	for _, storage := range storages {
		_, err := s.repo.GetStorage(ctx, storage.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrStorageNotFound) {
			return fmt.Errorf("failed to look up storage %s: %w", storage.ID, err)
		}

		if err := storage.Validate(); err != nil {
			return fmt.Errorf("invalid seed storage %q: %w", storage.ID, err)
		}

		if err := s.repo.CreateStorage(ctx, storage); err != nil {
			return err
		}
	}

	return nil
}
