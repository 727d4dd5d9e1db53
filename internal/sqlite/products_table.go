package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var (
	_ types.Table      = (*productsTable)(nil)
	_ types.CodeLookup = (*productsTable)(nil)
)

const productSelect = "SELECT product_id, identifier, document, created_at, updated_at FROM products"

var productFilters = map[string]string{
	"identifier":   "identifier = ?",
	"product_type": "COALESCE(product_type, '') = ?",
}

type productsTable struct {
	backend *Backend
}

func (pt *productsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := pt.backend.rlock(); err != nil {
		return nil, err
	}
	defer pt.backend.mu.RUnlock()

	return pt.getOne("product_id = ?", id)
}

// GetByCode retrieves a product by identifier.
func (pt *productsTable) GetByCode(identifier string) (any, error) {
	if identifier == "" {
		return nil, types.ErrInvalidCode
	}
	if err := pt.backend.rlock(); err != nil {
		return nil, err
	}
	defer pt.backend.mu.RUnlock()

	return pt.getOne("identifier = ?", identifier)
}

func (pt *productsTable) getOne(cond, arg string) (*types.Product, error) {
	p, err := hydrateProduct(pt.backend.db.QueryRow(productSelect+" WHERE "+cond, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product %s: %w", arg, err)
	}
	return p, nil
}

// Set creates or updates a product document. The document's identifier key
// is kept in sync with Identifier. The product type code is indexed for
// filtering.
func (pt *productsTable) Set(id string, data any) (string, error) {
	p, ok := data.(*types.Product)
	if !ok || p == nil {
		return "", types.ErrInvalidData
	}
	if p.Identifier == "" {
		return "", types.ErrInvalidCode
	}
	if p.Document == nil {
		p.Document = map[string]any{}
	}
	p.Document[types.DocIdentifier] = p.Identifier

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

	taken, err := codeTaken(pt.backend, "products", "product_id", "identifier", p.Identifier, id)
	if err != nil {
		return "", err
	}
	if taken {
		return "", types.ErrDuplicateCode
	}

	doc, err := encodeColumn(p.Document, "{}")
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	var productType sql.NullString
	if code := p.ProductTypeCode(); code != "" {
		productType = sql.NullString{String: code, Valid: true}
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err = pt.backend.db.Exec(`INSERT INTO products
    (product_id, identifier, product_type, document, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(product_id) DO UPDATE SET
    identifier = excluded.identifier,
    product_type = excluded.product_type,
    document = excluded.document,
    updated_at = excluded.updated_at`,
		id, p.Identifier, productType, doc, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting product: %w", err)
	}
	p.ProductID = id

	if err := pt.backend.persist("products"); err != nil {
		return "", err
	}
	return id, nil
}

func (pt *productsTable) Delete(id string) error {
	return deleteRow(pt.backend, "products", "product_id", id)
}

// Fetch returns products ordered by identifier. Filter keys: identifier,
// product_type ("" selects products without a type), limit, offset.
func (pt *productsTable) Fetch(filter types.Filter) ([]any, error) {
	where, args, err := conditions(filter, productFilters)
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

	rows, err := pt.backend.db.Query(productSelect+where+" ORDER BY identifier ASC"+pageClause, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		p, err := hydrateProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating product: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return results, nil
}

func (pt *productsTable) Count(filter types.Filter) (int, error) {
	if err := pt.backend.rlock(); err != nil {
		return 0, err
	}
	defer pt.backend.mu.RUnlock()

	return count(pt.backend, "products", "products", filter, productFilters)
}

func hydrateProduct(row rowScanner) (*types.Product, error) {
	var p types.Product
	var doc, createdAt, updatedAt string
	if err := row.Scan(&p.ProductID, &p.Identifier, &doc, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Document, err = decodeObject([]byte(doc)); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
