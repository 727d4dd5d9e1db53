package types

import "errors"

// Filter selects entities in Fetch and Count. Keys are table specific;
// "limit" and "offset" are understood by every table's Fetch.
type Filter map[string]any

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter, ordered by code.
	// An empty filter returns every entity in the table.
	Fetch(filter Filter) ([]any, error)

	// Count returns the number of entities matching the filter, ignoring
	// limit and offset.
	Count(filter Filter) (int, error)
}

// CodeLookup is implemented by tables whose entities carry a unique code.
type CodeLookup interface {
	// GetByCode retrieves the entity with the given code.
	// Returns ErrNotFound if no entity has that code.
	GetByCode(code string) (any, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
	ErrDuplicateCode = errors.New("code already used by another entity")
)

// Entity method errors.
var (
	ErrInvalidCode          = errors.New("invalid code")
	ErrAlreadyExists        = errors.New("entity already exists")
	ErrGroupNotFound        = errors.New("group not found")
	ErrFieldNotFound        = errors.New("field not found")
	ErrInvalidAttributeType = errors.New("invalid attribute type")
)
