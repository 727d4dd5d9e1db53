package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var (
	_ types.Table      = (*productTypesTable)(nil)
	_ types.CodeLookup = (*productTypesTable)(nil)
)

const productTypeSelect = "SELECT type_id, code, title, groups, created_at, updated_at FROM product_types"

var productTypeFilters = map[string]string{
	"code": "code = ?",
}

type productTypesTable struct {
	backend *Backend
}

func (pt *productTypesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := pt.backend.rlock(); err != nil {
		return nil, err
	}
	defer pt.backend.mu.RUnlock()

	return pt.getOne("type_id = ?", id)
}

func (pt *productTypesTable) GetByCode(code string) (any, error) {
	if code == "" {
		return nil, types.ErrInvalidCode
	}
	if err := pt.backend.rlock(); err != nil {
		return nil, err
	}
	defer pt.backend.mu.RUnlock()

	return pt.getOne("code = ?", code)
}

func (pt *productTypesTable) getOne(cond, arg string) (*types.ProductType, error) {
	t, err := hydrateProductType(pt.backend.db.QueryRow(productTypeSelect+" WHERE "+cond, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product type %s: %w", arg, err)
	}
	return t, nil
}

// Set creates or updates a product type with its groups and fields. An empty
// title is stored as the code.
func (pt *productTypesTable) Set(id string, data any) (string, error) {
	t, ok := data.(*types.ProductType)
	if !ok || t == nil {
		return "", types.ErrInvalidData
	}
	if t.Code == "" {
		return "", types.ErrInvalidCode
	}
	if err := pt.backend.lock(); err != nil {
		return "", err
	}
	defer pt.backend.mu.Unlock()

	if id == "" {
		newID, err := newID()
		if err != nil {
			return "", err
		}
		id = newID
	}

	taken, err := codeTaken(pt.backend, "product_types", "type_id", "code", t.Code, id)
	if err != nil {
		return "", err
	}
	if taken {
		return "", types.ErrDuplicateCode
	}

	if t.Title == "" {
		t.Title = t.Code
	}
	groups, err := encodeColumn(t.Groups, "[]")
	if err != nil {
		return "", fmt.Errorf("encoding groups: %w", err)
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err = pt.backend.db.Exec(`INSERT INTO product_types
    (type_id, code, title, groups, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(type_id) DO UPDATE SET
    code = excluded.code,
    title = excluded.title,
    groups = excluded.groups,
    updated_at = excluded.updated_at`,
		id, t.Code, t.Title, groups, formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting product type: %w", err)
	}
	t.TypeID = id

	if err := pt.backend.persist("product_types"); err != nil {
		return "", err
	}
	return id, nil
}

func (pt *productTypesTable) Delete(id string) error {
	return deleteRow(pt.backend, "product_types", "type_id", id)
}

// Fetch returns product types ordered by code. Filter keys: code, limit,
// offset.
func (pt *productTypesTable) Fetch(filter types.Filter) ([]any, error) {
	where, args, err := conditions(filter, productTypeFilters)
	if err != nil {
		return nil, err
	}
	pageClause, err := page(filter)
	if err != nil {
		return nil, err
	}
	if err := pt.backend.rlock(); err != nil {
		return nil, err
	}
	defer pt.backend.mu.RUnlock()

	rows, err := pt.backend.db.Query(productTypeSelect+where+" ORDER BY code ASC"+pageClause, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching product types: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		t, err := hydrateProductType(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating product type: %w", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product types: %w", err)
	}
	return results, nil
}

func (pt *productTypesTable) Count(filter types.Filter) (int, error) {
	if err := pt.backend.rlock(); err != nil {
		return 0, err
	}
	defer pt.backend.mu.RUnlock()

	return count(pt.backend, "product_types", "product_types", filter, productTypeFilters)
}

func hydrateProductType(row rowScanner) (*types.ProductType, error) {
	var t types.ProductType
	var groups, createdAt, updatedAt string
	if err := row.Scan(&t.TypeID, &t.Code, &t.Title, &groups, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := decodeColumn(groups, &t.Groups); err != nil {
		return nil, fmt.Errorf("decoding groups: %w", err)
	}
	for _, g := range t.Groups {
		if g.Fields == nil {
			g.Fields = []*types.Field{}
		}
	}
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
