// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/ambientcode/item-api/internal/model"
)

// Store errors.
var (
	ErrNotFound      = errors.New("item not found")
	ErrDuplicateSlug = errors.New("item with this slug already exists")
	ErrInvalidID     = errors.New("invalid item ID")
)

// Store defines the interface for item storage operations.
type Store interface {
	// Create adds a new item and returns it with the next numeric ID
	// assigned. Inputs are expected to be validated already; Create still
	// enforces slug uniqueness.
	Create(ctx context.Context, in model.CreateItemInput) (*model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id int64) (*model.Item, error)

	// GetBySlug retrieves an item by its slug.
	GetBySlug(ctx context.Context, slug string) (*model.Item, error)

	// List returns items ordered by ascending ID, skipping the first skip
	// items and returning at most limit.
	List(ctx context.Context, skip, limit int) ([]model.Item, error)

	// Update applies the set fields of in to an existing item.
	Update(ctx context.Context, id int64, in model.UpdateItemInput) (*model.Item, error)

	// Delete removes an item by its ID.
	Delete(ctx context.Context, id int64) error
}
