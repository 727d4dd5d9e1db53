// Package catalog wires storage, updaters and pagination into the catalog
// operations driven by the command line: list, show, create, update and
// delete of categories, product types, attributes and products.
package catalog

import (
	"fmt"

	"github.com/mesh-intelligence/catalog/pkg/pagination"
	"github.com/mesh-intelligence/catalog/pkg/types"
	"github.com/mesh-intelligence/catalog/pkg/updater"
)

// Repository gives typed, code-addressed access to one catalog table.
type Repository[T any] struct {
	table  types.Table
	lookup types.CodeLookup
	idOf   func(T) string
}

var _ updater.CategoryResolver = (*Repository[*types.Category])(nil)

func newRepository[T any](c types.Catalog, name string, idOf func(T) string) (*Repository[T], error) {
	tbl, err := c.GetTable(name)
	if err != nil {
		return nil, fmt.Errorf("opening table %s: %w", name, err)
	}
	lookup, ok := tbl.(types.CodeLookup)
	if !ok {
		return nil, fmt.Errorf("table %s does not support lookup by code", name)
	}
	return &Repository[T]{table: tbl, lookup: lookup, idOf: idOf}, nil
}

// NewCategoryRepository returns the repository of categories.
func NewCategoryRepository(c types.Catalog) (*Repository[*types.Category], error) {
	return newRepository(c, types.TableCategories, func(e *types.Category) string { return e.CategoryID })
}

// NewProductTypeRepository returns the repository of product types.
func NewProductTypeRepository(c types.Catalog) (*Repository[*types.ProductType], error) {
	return newRepository(c, types.TableProductTypes, func(e *types.ProductType) string { return e.TypeID })
}

// NewAttributeRepository returns the repository of attributes.
func NewAttributeRepository(c types.Catalog) (*Repository[*types.Attribute], error) {
	return newRepository(c, types.TableAttributes, func(e *types.Attribute) string { return e.AttributeID })
}

// NewProductRepository returns the repository of products, addressed by
// identifier.
func NewProductRepository(c types.Catalog) (*Repository[*types.Product], error) {
	return newRepository(c, types.TableProducts, func(e *types.Product) string { return e.ProductID })
}

// FindOneByIdentifier returns the entity with the given code. The error
// wraps types.ErrNotFound when there is none.
func (r *Repository[T]) FindOneByIdentifier(code string) (T, error) {
	var zero T
	v, err := r.lookup.GetByCode(code)
	if err != nil {
		return zero, fmt.Errorf("%q: %w", code, err)
	}
	e, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%q: unexpected %T: %w", code, v, types.ErrInvalidData)
	}
	return e, nil
}

// Find returns every entity matching filter.
func (r *Repository[T]) Find(filter types.Filter) ([]T, error) {
	rows, err := r.table.Fetch(filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		e, ok := row.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected %T: %w", row, types.ErrInvalidData)
		}
		out = append(out, e)
	}
	return out, nil
}

// FindPage returns the entities of one page and the total number of
// entities matching filter.
func (r *Repository[T]) FindPage(filter types.Filter, opts pagination.Options) ([]T, int, error) {
	total, err := r.table.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	pageFilter := types.Filter{"limit": opts.Limit, "offset": opts.Offset()}
	for k, v := range filter {
		pageFilter[k] = v
	}
	items, err := r.Find(pageFilter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Save creates or updates e.
func (r *Repository[T]) Save(e T) error {
	_, err := r.table.Set(r.idOf(e), e)
	return err
}

// Delete removes the entity with the given code.
func (r *Repository[T]) Delete(code string) error {
	e, err := r.FindOneByIdentifier(code)
	if err != nil {
		return err
	}
	return r.table.Delete(r.idOf(e))
}

// Codes returns the set of codes of every entity, using codeOf to read them.
func Codes[T any](r *Repository[T], codeOf func(T) string) (map[string]bool, error) {
	all, err := r.Find(nil)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(all))
	for _, e := range all {
		set[codeOf(e)] = true
	}
	return set, nil
}
