package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var (
	_ types.Table      = (*categoriesTable)(nil)
	_ types.CodeLookup = (*categoriesTable)(nil)
)

const (
	categorySelect = `SELECT c.category_id, c.code, c.parent_id, p.code, c.locales, c.labels, c.created_at, c.updated_at
FROM categories c LEFT JOIN categories p ON p.category_id = c.parent_id`
	categoryFrom = `categories c LEFT JOIN categories p ON p.category_id = c.parent_id`
)

// categoryFilters maps Fetch and Count filter keys to conditions. "parent"
// takes a parent code; "" selects tree roots.
var categoryFilters = map[string]string{
	"code":   "c.code = ?",
	"parent": "COALESCE(p.code, '') = ?",
}

type categoriesTable struct {
	backend *Backend
}

// Get retrieves a category by ID.
func (ct *categoriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := ct.backend.rlock(); err != nil {
		return nil, err
	}
	defer ct.backend.mu.RUnlock()

	return ct.getOne("c.category_id = ?", id)
}

// GetByCode retrieves a category by code.
func (ct *categoriesTable) GetByCode(code string) (any, error) {
	if code == "" {
		return nil, types.ErrInvalidCode
	}
	if err := ct.backend.rlock(); err != nil {
		return nil, err
	}
	defer ct.backend.mu.RUnlock()

	return ct.getOne("c.code = ?", code)
}

func (ct *categoriesTable) getOne(cond string, arg string) (*types.Category, error) {
	cat, err := hydrateCategory(ct.backend.db.QueryRow(categorySelect+" WHERE "+cond, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting category %s: %w", arg, err)
	}
	return cat, nil
}

// Set creates or updates a category. The parent is resolved by
// Parent.CategoryID, or by Parent.Code when the ID is empty; an unknown
// parent returns ErrNotFound, a parent inside the category's own subtree
// returns ErrInvalidData. Codes are unique (ErrDuplicateCode).
func (ct *categoriesTable) Set(id string, data any) (string, error) {
	cat, ok := data.(*types.Category)
	if !ok || cat == nil {
		return "", types.ErrInvalidData
	}
	if cat.Code == "" {
		return "", types.ErrInvalidCode
	}
	if err := ct.backend.lock(); err != nil {
		return "", err
	}
	defer ct.backend.mu.Unlock()

	if id == "" {
		newID, err := newID()
		if err != nil {
			return "", err
		}
		id = newID
	}

	taken, err := codeTaken(ct.backend, "categories", "category_id", "code", cat.Code, id)
	if err != nil {
		return "", err
	}
	if taken {
		return "", types.ErrDuplicateCode
	}

	var parentID sql.NullString
	if cat.Parent != nil {
		pid, err := ct.resolveParent(id, cat.Parent)
		if err != nil {
			return "", err
		}
		parentID = sql.NullString{String: pid, Valid: true}
	}

	locales, err := encodeColumn(cat.Locales, "[]")
	if err != nil {
		return "", fmt.Errorf("encoding locales: %w", err)
	}
	labels, err := encodeColumn(cat.Labels, "{}")
	if err != nil {
		return "", fmt.Errorf("encoding labels: %w", err)
	}

	now := time.Now()
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = now
	}
	cat.UpdatedAt = now

	_, err = ct.backend.db.Exec(`INSERT INTO categories
    (category_id, code, parent_id, locales, labels, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(category_id) DO UPDATE SET
    code = excluded.code,
    parent_id = excluded.parent_id,
    locales = excluded.locales,
    labels = excluded.labels,
    updated_at = excluded.updated_at`,
		id, cat.Code, parentID, locales, labels, formatTime(cat.CreatedAt), formatTime(cat.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting category: %w", err)
	}
	cat.CategoryID = id

	if err := ct.backend.persist("categories"); err != nil {
		return "", err
	}
	return id, nil
}

// resolveParent returns the ID of parent and rejects parents that would
// create a cycle.
func (ct *categoriesTable) resolveParent(id string, parent *types.Category) (string, error) {
	var pid string
	var err error
	if parent.CategoryID != "" {
		err = ct.backend.db.QueryRow("SELECT category_id FROM categories WHERE category_id = ?", parent.CategoryID).Scan(&pid)
	} else {
		err = ct.backend.db.QueryRow("SELECT category_id FROM categories WHERE code = ?", parent.Code).Scan(&pid)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("parent category %q: %w", parent.Code, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("resolving parent category: %w", err)
	}

	var inSubtree bool
	err = ct.backend.db.QueryRow(`WITH RECURSIVE ancestors(id) AS (
    SELECT ?
    UNION
    SELECT c.parent_id FROM categories c JOIN ancestors a ON c.category_id = a.id
    WHERE c.parent_id IS NOT NULL
)
SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = ?)`, pid, id).Scan(&inSubtree)
	if err != nil {
		return "", fmt.Errorf("checking category ancestry: %w", err)
	}
	if inSubtree {
		return "", fmt.Errorf("category cannot be its own ancestor: %w", types.ErrInvalidData)
	}
	return pid, nil
}

// Delete removes a category and its whole subtree.
func (ct *categoriesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := ct.backend.lock(); err != nil {
		return err
	}
	defer ct.backend.mu.Unlock()

	res, err := ct.backend.db.Exec(`WITH RECURSIVE subtree(id) AS (
    SELECT ?
    UNION
    SELECT c.category_id FROM categories c JOIN subtree s ON c.parent_id = s.id
)
DELETE FROM categories WHERE category_id IN (SELECT id FROM subtree)`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	return ct.backend.persist("categories")
}

// Fetch returns categories matching the filter ordered by code. Filter keys:
// code, parent, limit, offset.
func (ct *categoriesTable) Fetch(filter types.Filter) ([]any, error) {
	where, args, err := conditions(filter, categoryFilters)
	if err != nil {
		return nil, err
	}
	pageClause, err := page(filter)
	if err != nil {
		return nil, err
	}
	if err := ct.backend.rlock(); err != nil {
		return nil, err
	}
	defer ct.backend.mu.RUnlock()

	rows, err := ct.backend.db.Query(categorySelect+where+" ORDER BY c.code ASC"+pageClause, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		cat, err := hydrateCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating category: %w", err)
		}
		results = append(results, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return results, nil
}

// Count returns the number of categories matching the filter.
func (ct *categoriesTable) Count(filter types.Filter) (int, error) {
	if err := ct.backend.rlock(); err != nil {
		return 0, err
	}
	defer ct.backend.mu.RUnlock()

	return count(ct.backend, "categories", categoryFrom, filter, categoryFilters)
}

// hydrateCategory converts a row into a *types.Category. The parent is a
// shallow reference carrying its ID and code.
func hydrateCategory(row rowScanner) (*types.Category, error) {
	var c types.Category
	var parentID, parentCode sql.NullString
	var locales, labels, createdAt, updatedAt string
	if err := row.Scan(&c.CategoryID, &c.Code, &parentID, &parentCode, &locales, &labels, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		c.Parent = &types.Category{CategoryID: parentID.String, Code: parentCode.String}
	}
	if err := decodeColumn(locales, &c.Locales); err != nil {
		return nil, fmt.Errorf("decoding locales: %w", err)
	}
	if err := decodeColumn(labels, &c.Labels); err != nil {
		return nil, fmt.Errorf("decoding labels: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
