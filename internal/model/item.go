// Package model defines data structures used throughout the application.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/ambientcode/item-api/internal/security"
)

// Validation errors for item inputs.
var (
	ErrEmptyName = errors.New("name cannot be empty")
	ErrNullName  = errors.New("name cannot be null")
)

// Field length limits enforced by sanitization.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
)

// Item represents a named, sluggable resource.
//
// IDs are assigned by the store, increase monotonically and are never
// reused. The slug is unique across all live items and immutable after
// creation.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateItemInput is the payload for creating a new item.
type CreateItemInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// Validate sanitizes the free-text fields in place and validates the slug.
// Name and description are cleaned, never rejected for length; the slug is
// rejected if malformed.
func (in *CreateItemInput) Validate() error {
	in.Name = security.Sanitize(in.Name, MaxNameLength)
	if in.Name == "" {
		return ErrEmptyName
	}

	if in.Description != nil {
		desc := security.Sanitize(*in.Description, MaxDescriptionLength)
		in.Description = &desc
	}

	return security.ValidateSlug(in.Slug)
}

// Optional is a three-way JSON field: absent, explicitly null, or a value.
// UnmarshalJSON only runs for keys present in the payload, so the zero
// Optional means the field was omitted.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// UpdateItemInput is the payload for partially updating an item. Fields left
// absent are untouched; a null description clears it. The slug cannot be
// changed through an update.
type UpdateItemInput struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// Validate sanitizes the fields that are present. Name is not nullable and
// must remain non-empty after sanitization.
func (in *UpdateItemInput) Validate() error {
	if in.Name.Set {
		if in.Name.Value == nil {
			return ErrNullName
		}
		name := security.Sanitize(*in.Name.Value, MaxNameLength)
		if name == "" {
			return ErrEmptyName
		}
		in.Name.Value = &name
	}

	if in.Description.Set && in.Description.Value != nil {
		desc := security.Sanitize(*in.Description.Value, MaxDescriptionLength)
		in.Description.Value = &desc
	}

	return nil
}

// APIResponse is a generic wrapper for API responses.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse creates a successful API response.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error API response.
func NewErrorResponse[T any](errMsg string) APIResponse[T] {
	return APIResponse[T]{
		Success: false,
		Error:   errMsg,
	}
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ItemEvent is a message sent over the item event stream.
type ItemEvent struct {
	Type      string    `json:"type"`
	Item      Item      `json:"item"`
	Timestamp time.Time `json:"timestamp"`
}

// Item event types.
const (
	EventItemCreated = "item_created"
	EventItemUpdated = "item_updated"
	EventItemDeleted = "item_deleted"
)

// NewItemEvent creates an item event with the current timestamp.
func NewItemEvent(eventType string, item Item) ItemEvent {
	return ItemEvent{
		Type:      eventType,
		Item:      item,
		Timestamp: time.Now().UTC(),
	}
}
