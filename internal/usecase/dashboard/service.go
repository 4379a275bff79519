package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/inventory-ledger/internal/domain"
	"github.com/simaogato/inventory-ledger/internal/usecase/ledger"
)

// HistoryLine summarizes one recorded operation
type HistoryLine struct {
	EntryID     uuid.UUID
	Kind        domain.Kind
	Description string
	Applied     bool
}

// Snapshot is a point-in-time copy of the catalog and history
type Snapshot struct {
	Items      []domain.Item
	Storages   []domain.Storage
	TotalUnits int
	History    []HistoryLine // Oldest first; the last line is what Undo reverses next
}

// DashboardService handles read-only views of the ledger
type DashboardService struct {
	Catalog domain.CatalogRepository
	Manager *ledger.Manager
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(catalog domain.CatalogRepository, manager *ledger.Manager) *DashboardService {
	return &DashboardService{
		Catalog: catalog,
		Manager: manager,
	}
}

// GetSnapshot copies the current state
// Logic:
//   - List items and storages from the catalog
//   - Copy their fields while holding the Manager lock, so no operation is half applied
//   - TotalUnits: sum of all storage counts
func (s *DashboardService) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	items, err := s.Catalog.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	storages, err := s.Catalog.ListStorages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list storages: %w", err)
	}

	snapshot := &Snapshot{
		Items:    make([]domain.Item, 0, len(items)),
		Storages: make([]domain.Storage, 0, len(storages)),
	}

	s.Manager.Inspect(func(entries []ledger.HistoryEntry) {
		for _, item := range items {
			snapshot.Items = append(snapshot.Items, *item)
		}
		for _, storage := range storages {
			snapshot.Storages = append(snapshot.Storages, *storage)
			snapshot.TotalUnits += storage.ItemsCount
		}
		snapshot.History = make([]HistoryLine, 0, len(entries))
		for _, entry := range entries {
			snapshot.History = append(snapshot.History, HistoryLine{
				EntryID:     entry.ID,
				Kind:        entry.Operation.Kind(),
				Description: entry.Description(),
				Applied:     entry.Status.Applied(),
			})
		}
	})

	return snapshot, nil
}
