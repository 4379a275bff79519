package domain

import (
	"errors"
	"fmt"
)

// Storage represents an inventory location tracking an aggregate unit count
// There is no per-item breakdown: every operation moves plain units
type Storage struct {
	ID         string
	Owner      string
	ItemsCount int // Never driven below zero by RemoveItem or TransferItem
}

// NewStorage creates an empty storage
func NewStorage(id, owner string) *Storage {
	return &Storage{
		ID:    id,
		Owner: owner,
	}
}

// Validate ensures the storage adheres to domain rules
// Returns an error if validation fails
func (s *Storage) Validate() error {
	if s.ID == "" {
		return errors.New("storage id cannot be empty")
	}

	if s.ItemsCount < 0 {
		return errors.New("storage items count cannot be negative")
	}

	return nil
}

// HasAtLeast reports whether the storage can give up amount units
// Equality is allowed, so a storage may be emptied to exactly zero
func (s *Storage) HasAtLeast(amount int) bool {
	return s.ItemsCount >= amount
}

func (s *Storage) String() string {
	return fmt.Sprintf("Storage %s (Owner: %s): %d units", s.ID, s.Owner, s.ItemsCount)
}
