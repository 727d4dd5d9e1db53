package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var (
	_ types.Table      = (*attributesTable)(nil)
	_ types.CodeLookup = (*attributesTable)(nil)
)

const attributeSelect = "SELECT attribute_id, code, type, options, created_at FROM attributes"

var attributeFilters = map[string]string{
	"code": "code = ?",
	"type": "type = ?",
}

type attributesTable struct {
	backend *Backend
}

func (at *attributesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := at.backend.rlock(); err != nil {
		return nil, err
	}
	defer at.backend.mu.RUnlock()

	return at.getOne("attribute_id = ?", id)
}

func (at *attributesTable) GetByCode(code string) (any, error) {
	if code == "" {
		return nil, types.ErrInvalidCode
	}
	if err := at.backend.rlock(); err != nil {
		return nil, err
	}
	defer at.backend.mu.RUnlock()

	return at.getOne("code = ?", code)
}

func (at *attributesTable) getOne(cond, arg string) (*types.Attribute, error) {
	a, err := hydrateAttribute(at.backend.db.QueryRow(attributeSelect+" WHERE "+cond, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting attribute %s: %w", arg, err)
	}
	return a, nil
}

// Set creates or updates an attribute. The type must be one of the
// AttributeType constants; only select attributes may carry options.
func (at *attributesTable) Set(id string, data any) (string, error) {
	a, ok := data.(*types.Attribute)
	if !ok || a == nil {
		return "", types.ErrInvalidData
	}
	if a.Code == "" {
		return "", types.ErrInvalidCode
	}
	if !types.IsValidAttributeType(a.Type) {
		return "", types.ErrInvalidAttributeType
	}
	if !a.IsSelect() && len(a.Options) > 0 {
		return "", types.ErrInvalidAttributeType
	}
	if err := at.backend.lock(); err != nil {
		return "", err
	}
	defer at.backend.mu.Unlock()

	if id == "" {
		newID, err := newID()
		if err != nil {
			return "", err
		}
		id = newID
	}

	taken, err := codeTaken(at.backend, "attributes", "attribute_id", "code", a.Code, id)
	if err != nil {
		return "", err
	}
	if taken {
		return "", types.ErrDuplicateCode
	}

	options, err := encodeColumn(a.Options, "[]")
	if err != nil {
		return "", fmt.Errorf("encoding options: %w", err)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err = at.backend.db.Exec(`INSERT INTO attributes
    (attribute_id, code, type, options, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(attribute_id) DO UPDATE SET
    code = excluded.code,
    type = excluded.type,
    options = excluded.options`,
		id, a.Code, a.Type, options, formatTime(a.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting attribute: %w", err)
	}
	a.AttributeID = id

	if err := at.backend.persist("attributes"); err != nil {
		return "", err
	}
	return id, nil
}

func (at *attributesTable) Delete(id string) error {
	return deleteRow(at.backend, "attributes", "attribute_id", id)
}

// Fetch returns attributes ordered by code. Filter keys: code, type, limit,
// offset.
func (at *attributesTable) Fetch(filter types.Filter) ([]any, error) {
	where, args, err := conditions(filter, attributeFilters)
	if err != nil {
		return nil, err
	}
	pageClause, err := page(filter)
	if err != nil {
		return nil, err
	}
	if err := at.backend.rlock(); err != nil {
		return nil, err
	}
	defer at.backend.mu.RUnlock()

	rows, err := at.backend.db.Query(attributeSelect+where+" ORDER BY code ASC"+pageClause, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching attributes: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		a, err := hydrateAttribute(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating attribute: %w", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attributes: %w", err)
	}
	return results, nil
}

func (at *attributesTable) Count(filter types.Filter) (int, error) {
	if err := at.backend.rlock(); err != nil {
		return 0, err
	}
	defer at.backend.mu.RUnlock()

	return count(at.backend, "attributes", "attributes", filter, attributeFilters)
}

func hydrateAttribute(row rowScanner) (*types.Attribute, error) {
	var a types.Attribute
	var options, createdAt string
	if err := row.Scan(&a.AttributeID, &a.Code, &a.Type, &options, &createdAt); err != nil {
		return nil, err
	}
	if err := decodeColumn(options, &a.Options); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}
	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}
