package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/inventory-ledger/internal/domain"
	"github.com/simaogato/inventory-ledger/internal/usecase/ledger"
)

// ErrInvalidAmount is returned when a request carries a negative unit amount
var ErrInvalidAmount = errors.New("invalid amount: amount must be non-negative")

// AddItemInput represents the input for adding units to a storage
type AddItemInput struct {
	ItemID    string
	StorageID string
	Amount    int
}

// RemoveItemInput represents the input for removing units from a storage
type RemoveItemInput struct {
	ItemID    string
	StorageID string
	Amount    int
}

// TransferItemInput represents the input for moving units between storages
type TransferItemInput struct {
	ItemID          string
	SourceStorageID string
	TargetStorageID string
	Amount          int
}

// AdjustPriceInput represents the input for changing an item's price
type AdjustPriceInput struct {
	ItemID string
	Price  domain.Money
}

// OperationResult describes a recorded operation
type OperationResult struct {
	EntryID uuid.UUID
	Kind    domain.Kind
	Status  domain.Status
}

// InventoryService resolves catalog IDs and runs operations through the ledger Manager
type InventoryService struct {
	Catalog domain.CatalogRepository
	Manager *ledger.Manager
}

// NewInventoryService creates a new InventoryService instance
func NewInventoryService(catalog domain.CatalogRepository, manager *ledger.Manager) *InventoryService {
	return &InventoryService{
		Catalog: catalog,
		Manager: manager,
	}
}

// AddItem records an AddItem operation
func (s *InventoryService) AddItem(ctx context.Context, input AddItemInput) (*OperationResult, error) {
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	item, storage, err := s.resolve(ctx, input.ItemID, input.StorageID)
	if err != nil {
		return nil, err
	}

	return s.run(domain.AddItem{}, domain.AddArgs(item, storage, input.Amount)), nil
}

// RemoveItem records a RemoveItem operation
// Insufficient stock is not an error: it comes back in the result status
func (s *InventoryService) RemoveItem(ctx context.Context, input RemoveItemInput) (*OperationResult, error) {
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	item, storage, err := s.resolve(ctx, input.ItemID, input.StorageID)
	if err != nil {
		return nil, err
	}

	return s.run(domain.RemoveItem{}, domain.RemoveArgs(item, storage, input.Amount)), nil
}

// TransferItem records a TransferItem operation
// Logic:
//  1. Validate amount and that source and target differ
//  2. Resolve item, source and target from the catalog
//  3. Execute through the Manager (insufficient stock is reported in the status)
func (s *InventoryService) TransferItem(ctx context.Context, input TransferItemInput) (*OperationResult, error) {
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	if input.SourceStorageID == input.TargetStorageID {
		return nil, errors.New("invalid transfer: source and target storage must differ")
	}

	item, source, err := s.resolve(ctx, input.ItemID, input.SourceStorageID)
	if err != nil {
		return nil, err
	}

	target, err := s.Catalog.GetStorage(ctx, input.TargetStorageID)
	if err != nil {
		return nil, err
	}

	return s.run(domain.TransferItem{}, domain.TransferArgs(item, source, target, input.Amount)), nil
}

// AdjustPrice records an AdjustPrice operation
// Each call gets its own AdjustPrice instance, so undo always restores the price it replaced
func (s *InventoryService) AdjustPrice(ctx context.Context, input AdjustPriceInput) (*OperationResult, error) {
	if input.Price.IsNegative() {
		return nil, errors.New("invalid price: price must not be negative")
	}

	item, err := s.Catalog.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	return s.run(domain.NewAdjustPrice(), domain.PriceArgs(item, input.Price)), nil
}

// Undo reverses the most recent operation
func (s *InventoryService) Undo(ctx context.Context) (domain.Status, error) {
	if err := ctx.Err(); err != nil {
		return domain.Status{}, err
	}
	return s.Manager.Undo(), nil
}

func (s *InventoryService) resolve(ctx context.Context, itemID, storageID string) (*domain.Item, *domain.Storage, error) {
	item, err := s.Catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}

	storage, err := s.Catalog.GetStorage(ctx, storageID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve storage: %w", err)
	}

	return item, storage, nil
}

func (s *InventoryService) run(op domain.Operation, args domain.Args) *OperationResult {
	entry := s.Manager.ExecuteEntry(op, args)
	return &OperationResult{
		EntryID: entry.ID,
		Kind:    op.Kind(),
		Status:  entry.Status,
	}
}
