package catalog

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// ProductTypeManager finds, creates and stores product types.
type ProductTypeManager struct {
	repo *Repository[*types.ProductType]
}

func NewProductTypeManager(repo *Repository[*types.ProductType]) *ProductTypeManager {
	return &ProductTypeManager{repo: repo}
}

// Find returns the product type with the given code.
func (m *ProductTypeManager) Find(code string) (*types.ProductType, error) {
	pt, err := m.repo.FindOneByIdentifier(code)
	if err != nil {
		return nil, fmt.Errorf("product type %w", err)
	}
	return pt, nil
}

// Create returns a new, unsaved product type. An empty title defaults to the
// code. Returns ErrAlreadyExists if the code is taken.
func (m *ProductTypeManager) Create(code, title string) (*types.ProductType, error) {
	if code == "" {
		return nil, types.ErrInvalidCode
	}
	_, err := m.repo.FindOneByIdentifier(code)
	if err == nil {
		return nil, fmt.Errorf("product type %q: %w", code, types.ErrAlreadyExists)
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	if title == "" {
		title = code
	}
	return &types.ProductType{Code: code, Title: title, Groups: []*types.FieldGroup{}}, nil
}

// Save stores pt.
func (m *ProductTypeManager) Save(pt *types.ProductType) error {
	if err := m.repo.Save(pt); err != nil {
		return fmt.Errorf("saving product type %q: %w", pt.Code, err)
	}
	return nil
}

// Delete removes the product type with the given code.
func (m *ProductTypeManager) Delete(code string) error {
	if err := m.repo.Delete(code); err != nil {
		return fmt.Errorf("deleting product type %w", err)
	}
	return nil
}

// NewProduct returns an unsaved product of the type with the given code.
func (m *ProductTypeManager) NewProduct(typeCode, identifier string) (*types.Product, error) {
	pt, err := m.Find(typeCode)
	if err != nil {
		return nil, err
	}
	return pt.NewProduct(identifier), nil
}
