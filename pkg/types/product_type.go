package types

import (
	"slices"
	"time"
)

// ProductType describes a kind of product: its title and the fields,
// organized in groups, that products of this type carry.
type ProductType struct {
	TypeID    string        // UUID v7, generated on creation.
	Code      string        // Unique human-readable identifier.
	Title     string        // Display title; defaults to Code.
	Groups    []*FieldGroup // Field groups in display order.
	CreatedAt time.Time     // Timestamp of creation.
	UpdatedAt time.Time     // Timestamp of last modification.
}

// FieldGroup is a named, ordered set of fields of a product type.
type FieldGroup struct {
	Code   string   `json:"code"`
	Title  string   `json:"title"`
	Fields []*Field `json:"fields"`
}

// Field is a product type field. Type is one of the AttributeType constants.
type Field struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// SetCode replaces the product type code.
func (pt *ProductType) SetCode(code string) {
	pt.Code = code
	pt.UpdatedAt = time.Now()
}

// SetTitle sets the display title. An empty title resets it to the code.
func (pt *ProductType) SetTitle(title string) {
	if title == "" {
		title = pt.Code
	}
	pt.Title = title
	pt.UpdatedAt = time.Now()
}

// AddGroup appends an empty field group.
// Returns ErrInvalidCode if code is empty, ErrDuplicateCode if a group with
// that code already exists.
func (pt *ProductType) AddGroup(code, title string) (*FieldGroup, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}
	if _, err := pt.GetGroup(code); err == nil {
		return nil, ErrDuplicateCode
	}
	if title == "" {
		title = code
	}
	g := &FieldGroup{Code: code, Title: title, Fields: []*Field{}}
	pt.Groups = append(pt.Groups, g)
	pt.UpdatedAt = time.Now()
	return g, nil
}

// GetGroup returns the group with the given code or ErrGroupNotFound.
func (pt *ProductType) GetGroup(code string) (*FieldGroup, error) {
	for _, g := range pt.Groups {
		if g.Code == code {
			return g, nil
		}
	}
	return nil, ErrGroupNotFound
}

// RemoveGroup deletes the group and all of its fields.
// Returns ErrGroupNotFound if no group has that code.
func (pt *ProductType) RemoveGroup(code string) error {
	i := slices.IndexFunc(pt.Groups, func(g *FieldGroup) bool { return g.Code == code })
	if i < 0 {
		return ErrGroupNotFound
	}
	pt.Groups = slices.Delete(pt.Groups, i, i+1)
	pt.UpdatedAt = time.Now()
	return nil
}

// AddField adds a field to an existing group. Field codes are unique across
// the whole product type. An empty title defaults to the field code.
func (pt *ProductType) AddField(fieldCode, fieldType, groupCode, title string) (*Field, error) {
	if fieldCode == "" {
		return nil, ErrInvalidCode
	}
	if !IsValidAttributeType(fieldType) {
		return nil, ErrInvalidAttributeType
	}
	g, err := pt.GetGroup(groupCode)
	if err != nil {
		return nil, err
	}
	if _, err := pt.GetField(fieldCode); err == nil {
		return nil, ErrDuplicateCode
	}
	if title == "" {
		title = fieldCode
	}
	f := &Field{Code: fieldCode, Type: fieldType, Title: title}
	g.Fields = append(g.Fields, f)
	pt.UpdatedAt = time.Now()
	return f, nil
}

// GetField returns the field with the given code from any group, or
// ErrFieldNotFound.
func (pt *ProductType) GetField(code string) (*Field, error) {
	for _, g := range pt.Groups {
		for _, f := range g.Fields {
			if f.Code == code {
				return f, nil
			}
		}
	}
	return nil, ErrFieldNotFound
}

// RemoveField deletes the field from whichever group holds it.
// Returns ErrFieldNotFound if no group holds a field with that code.
func (pt *ProductType) RemoveField(code string) error {
	for _, g := range pt.Groups {
		i := slices.IndexFunc(g.Fields, func(f *Field) bool { return f.Code == code })
		if i >= 0 {
			g.Fields = slices.Delete(g.Fields, i, i+1)
			pt.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrFieldNotFound
}

// NewProduct returns an unsaved product of this type with one empty value
// per field, in group order.
func (pt *ProductType) NewProduct(identifier string) *Product {
	values := []any{}
	for _, g := range pt.Groups {
		for _, f := range g.Fields {
			values = append(values, map[string]any{ValueAttribute: f.Code, ValueData: nil})
		}
	}
	return &Product{
		Identifier: identifier,
		Document: map[string]any{
			DocIdentifier:  identifier,
			DocProductType: pt.Code,
			DocCategories:  []any{},
			DocValues:      values,
		},
	}
}
