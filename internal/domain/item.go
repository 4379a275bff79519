package domain

import (
	"errors"
	"fmt"
)

// Item represents a catalog entry with a mutable price
// Price is changed only by AdjustPrice
type Item struct {
	ID    string
	Title string
	Price Money
}

// NewItem creates an item priced at 0.00
func NewItem(id, title string) *Item {
	return &Item{
		ID:    id,
		Title: title,
		Price: ZeroMoney(),
	}
}

// Validate ensures the item adheres to domain rules
func (i *Item) Validate() error {
	if i.ID == "" {
		return errors.New("item id cannot be empty")
	}
	if i.Price.IsNegative() {
		return errors.New("item price cannot be negative")
	}
	return nil
}

func (i *Item) String() string {
	return fmt.Sprintf("Item: %s (ID: %s), Price: %s", i.Title, i.ID, i.Price)
}
