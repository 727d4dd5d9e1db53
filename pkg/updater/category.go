package updater

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

const targetCategory = "category"

// CategoryResolver finds a category by its code. Implementations return an
// error wrapping types.ErrNotFound when no category has that code.
type CategoryResolver interface {
	FindOneByIdentifier(code string) (*types.Category, error)
}

var _ ObjectUpdater = (*CategoryUpdater)(nil)

// CategoryUpdater updates a *types.Category. Recognized fields:
//
//	code    scalar
//	parent  scalar or null; null or "" detaches the category
//	labels  object of locale code -> scalar or null
type CategoryUpdater struct {
	categories CategoryResolver
	fields     fieldTable[*types.Category]
}

// NewCategoryUpdater returns an updater resolving parent codes through categories.
func NewCategoryUpdater(categories CategoryResolver) *CategoryUpdater {
	u := &CategoryUpdater{categories: categories}
	u.fields = fieldTable[*types.Category]{
		target: targetCategory,
		rules: map[string]fieldRule[*types.Category]{
			"code":   {check: expectScalar, apply: setCategoryCode},
			"parent": {check: expectScalarOrNull, apply: u.updateParent},
			"labels": {check: expectScalarMap("a label is not a scalar"), apply: declareLocales},
		},
	}
	return u
}

// Update applies fields to object, which must be a *types.Category.
func (u *CategoryUpdater) Update(object any, fields Fields, opts Options) error {
	category, ok := object.(*types.Category)
	if !ok || category == nil {
		return ObjectExpected(object, "*types.Category")
	}
	return u.fields.update(category, fields, opts)
}

// Fields returns the recognized field names.
func (u *CategoryUpdater) Fields() []string {
	return u.fields.names()
}

func setCategoryCode(c *types.Category, value any) error {
	c.SetCode(scalarString(value))
	return nil
}

// declareLocales registers every locale present in the labels object on the
// category. The label text is not assigned.
func declareLocales(c *types.Category, value any) error {
	labels, _ := asMap(value)
	for _, locale := range slices.Sorted(maps.Keys(labels)) {
		c.SetLocale(locale)
	}
	return nil
}

func (u *CategoryUpdater) updateParent(c *types.Category, value any) error {
	if value == nil || value == "" {
		c.SetParent(nil)
		return nil
	}

	code := scalarString(value)
	parent, err := u.categories.FindOneByIdentifier(code)
	if errors.Is(err, types.ErrNotFound) || (err == nil && parent == nil) {
		return ValidEntityCodeExpected("parent", "category code", "The category does not exist", actionUpdate, targetCategory, code)
	}
	if err != nil {
		return fmt.Errorf("resolving parent category %q: %w", code, err)
	}

	c.SetParent(parent)
	return nil
}
