package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ambientcode/item-api/internal/model"
)

// MemoryStore implements Store interface with in-memory storage. Items live
// in a primary map keyed by ID with a secondary unique index on slug; both
// maps are mutated under one lock so they can never disagree.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[int64]model.Item
	slugs  map[string]int64
	nextID int64
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make(map[int64]model.Item),
		slugs:  make(map[string]int64),
		nextID: 1,
	}
}

// Create adds a new item to the store. The ID counter only advances on
// success, so a rejected duplicate never consumes an ID.
func (s *MemoryStore) Create(ctx context.Context, in model.CreateItemInput) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.slugs[in.Slug]; exists {
		return nil, ErrDuplicateSlug
	}

	now := time.Now().UTC()
	item := model.Item{
		ID:          s.nextID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.items[item.ID] = item
	s.slugs[item.Slug] = item.ID
	s.nextID++

	return &item, nil
}

// Get retrieves an item by its ID.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	if id < 1 {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &item, nil
}

// GetBySlug resolves a slug through the secondary index and retrieves the
// item it points to.
func (s *MemoryStore) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item by slug: %w", ctx.Err())
	default:
	}

	if slug == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.slugs[slug]
	if !exists {
		return nil, ErrNotFound
	}

	item, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &item, nil
}

// List returns items ordered by ascending ID. Negative skip or non-positive
// limit yields an empty slice.
func (s *MemoryStore) List(ctx context.Context, skip, limit int) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	if skip < 0 || limit <= 0 {
		return []model.Item{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	if skip >= len(items) {
		return []model.Item{}, nil
	}

	end := skip + limit
	if end > len(items) {
		end = len(items)
	}

	return items[skip:end], nil
}

// Update applies the fields present in in to an existing item. UpdatedAt is
// refreshed on every successful update, even one that sets no fields. The
// slug and CreatedAt are immutable.
func (s *MemoryStore) Update(ctx context.Context, id int64, in model.UpdateItemInput) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update item: %w", ctx.Err())
	default:
	}

	if id < 1 {
		return nil, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	if in.Name.Set && in.Name.Value != nil {
		item.Name = *in.Name.Value
	}

	if in.Description.Set {
		item.Description = in.Description.Value
	}

	item.UpdatedAt = time.Now().UTC()
	s.items[id] = item

	return &item, nil
}

// Delete removes an item from both indexes. The slug becomes available for
// reuse; the numeric ID is never reassigned.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	if id < 1 {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return ErrNotFound
	}

	delete(s.items, id)
	delete(s.slugs, item.Slug)

	return nil
}
