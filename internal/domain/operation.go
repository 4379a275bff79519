package domain

import "fmt"

// Kind identifies an operation variant
type Kind string

const (
	KindAddItem      Kind = "ADD_ITEM"
	KindRemoveItem   Kind = "REMOVE_ITEM"
	KindTransferItem Kind = "TRANSFER_ITEM"
	KindAdjustPrice  Kind = "ADJUST_PRICE"
)

// Operation is a reversible mutation of items and storages.
// Execute and Undo receive the same Args; Undo reverses the arithmetic of Execute.
type Operation interface {
	Kind() Kind
	Execute(args Args) Status
	Undo(args Args) Status
	Describe(args Args) string
}

// Args is the argument set an operation is executed with.
// It holds references to live objects, so undo mutates the same Item and Storage.
type Args struct {
	Item    *Item
	Storage *Storage // Source storage for transfers
	Target  *Storage // Destination storage, transfers only
	Amount  int
	Price   Money // New price, AdjustPrice only
}

// AddArgs builds the arguments for AddItem
func AddArgs(item *Item, storage *Storage, amount int) Args {
	return Args{Item: item, Storage: storage, Amount: amount}
}

// RemoveArgs builds the arguments for RemoveItem
func RemoveArgs(item *Item, storage *Storage, amount int) Args {
	return Args{Item: item, Storage: storage, Amount: amount}
}

// TransferArgs builds the arguments for TransferItem
func TransferArgs(item *Item, source, target *Storage, amount int) Args {
	return Args{Item: item, Storage: source, Target: target, Amount: amount}
}

// PriceArgs builds the arguments for AdjustPrice
func PriceArgs(item *Item, price Money) Args {
	return Args{Item: item, Price: price}
}

// AddItem puts units into a storage. Amount is assumed non-negative.
type AddItem struct{}

func (AddItem) Kind() Kind { return KindAddItem }

func (AddItem) Execute(args Args) Status {
	args.Storage.ItemsCount += args.Amount
	return Status{
		Kind:    KindAddItem,
		Message: fmt.Sprintf("Added %d units. Storage: %s", args.Amount, args.Storage.ID),
	}
}

// Undo takes the units back out. There is no underflow check.
func (AddItem) Undo(args Args) Status {
	args.Storage.ItemsCount -= args.Amount
	return Status{
		Kind:    KindAddItem,
		Undo:    true,
		Message: fmt.Sprintf("Undo: removed %d units from storage %s", args.Amount, args.Storage.ID),
	}
}

func (AddItem) Describe(args Args) string {
	return fmt.Sprintf("Add %d to %s", args.Amount, args.Storage.ID)
}

// RemoveItem takes units out of a storage when it holds enough
type RemoveItem struct{}

func (RemoveItem) Kind() Kind { return KindRemoveItem }

func (RemoveItem) Execute(args Args) Status {
	if !args.Storage.HasAtLeast(args.Amount) {
		return Status{
			Kind:    KindRemoveItem,
			Message: "Error: not enough stock to remove",
			Err:     ErrInsufficientStock,
		}
	}

	args.Storage.ItemsCount -= args.Amount
	return Status{
		Kind:    KindRemoveItem,
		Message: fmt.Sprintf("Removed %d units from storage %s", args.Amount, args.Storage.ID),
	}
}

// Undo puts the units back, whether or not Execute applied them
func (RemoveItem) Undo(args Args) Status {
	args.Storage.ItemsCount += args.Amount
	return Status{
		Kind:    KindRemoveItem,
		Undo:    true,
		Message: fmt.Sprintf("Undo: returned %d units to storage %s", args.Amount, args.Storage.ID),
	}
}

func (RemoveItem) Describe(args Args) string {
	return fmt.Sprintf("Remove %d from %s", args.Amount, args.Storage.ID)
}

// TransferItem moves units from Args.Storage to Args.Target
type TransferItem struct{}

func (TransferItem) Kind() Kind { return KindTransferItem }

func (TransferItem) Execute(args Args) Status {
	if !args.Storage.HasAtLeast(args.Amount) {
		return Status{
			Kind:    KindTransferItem,
			Message: "Error: not enough stock to transfer",
			Err:     ErrInsufficientStock,
		}
	}

	args.Storage.ItemsCount -= args.Amount
	args.Target.ItemsCount += args.Amount
	return Status{
		Kind: KindTransferItem,
		Message: fmt.Sprintf("Transferred %d units from storage %s to %s",
			args.Amount, args.Storage.ID, args.Target.ID),
	}
}

// Undo moves the units back, whether or not Execute applied them
func (TransferItem) Undo(args Args) Status {
	args.Target.ItemsCount -= args.Amount
	args.Storage.ItemsCount += args.Amount
	return Status{
		Kind:    KindTransferItem,
		Undo:    true,
		Message: fmt.Sprintf("Undo: moved items back from storage %s to %s", args.Target.ID, args.Storage.ID),
	}
}

func (TransferItem) Describe(args Args) string {
	return fmt.Sprintf("Transfer %d from %s to %s", args.Amount, args.Storage.ID, args.Target.ID)
}

// AdjustPrice sets an item's price and remembers the one it replaced.
//
// It is a two-phase object: Execute arms it with the previous price and
// Undo restores that price. An instance is meant for a single price change.
// Executing it again before undoing overwrites the remembered price, which
// Overwritten reports.
type AdjustPrice struct {
	previous   Money
	executions int
}

// NewAdjustPrice creates an unarmed AdjustPrice
func NewAdjustPrice() *AdjustPrice {
	return &AdjustPrice{}
}

func (*AdjustPrice) Kind() Kind { return KindAdjustPrice }

func (op *AdjustPrice) Execute(args Args) Status {
	op.previous = args.Item.Price
	op.executions++
	args.Item.Price = args.Price
	return Status{
		Kind:    KindAdjustPrice,
		Message: fmt.Sprintf("Price changed from %s to %s", op.previous, args.Item.Price),
	}
}

// Undo restores the price saved by the most recent Execute
func (op *AdjustPrice) Undo(args Args) Status {
	if op.executions == 0 {
		return Status{
			Kind:    KindAdjustPrice,
			Undo:    true,
			Message: fmt.Sprintf("Undo: item %s has no previous price to restore", args.Item.Title),
			Err:     ErrNothingToRestore,
		}
	}

	args.Item.Price = op.previous
	return Status{
		Kind:    KindAdjustPrice,
		Undo:    true,
		Message: fmt.Sprintf("Undo: price of item %s restored to %s", args.Item.Title, args.Item.Price),
	}
}

func (*AdjustPrice) Describe(args Args) string {
	return fmt.Sprintf("Set price of %s to %s", args.Item.ID, args.Price)
}

// PreviousPrice returns the price saved by the last Execute, if any
func (op *AdjustPrice) PreviousPrice() (Money, bool) {
	return op.previous, op.executions > 0
}

// Overwritten reports whether Execute ran more than once, losing the earliest previous price
func (op *AdjustPrice) Overwritten() bool {
	return op.executions > 1
}
