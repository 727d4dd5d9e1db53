package types

import (
	"slices"
	"time"
)

// Attribute types. Select types carry a list of option codes.
const (
	AttributeTypeText         = "text"
	AttributeTypeNumber       = "number"
	AttributeTypeBoolean      = "boolean"
	AttributeTypeDate         = "date"
	AttributeTypeSimpleSelect = "simple_select"
	AttributeTypeMultiSelect  = "multi_select"
)

var validAttributeTypes = map[string]bool{
	AttributeTypeText:         true,
	AttributeTypeNumber:       true,
	AttributeTypeBoolean:      true,
	AttributeTypeDate:         true,
	AttributeTypeSimpleSelect: true,
	AttributeTypeMultiSelect:  true,
}

// IsValidAttributeType reports whether the given string is a recognized attribute type.
func IsValidAttributeType(t string) bool {
	return validAttributeTypes[t]
}

// Attribute is a product characteristic that product values refer to.
type Attribute struct {
	AttributeID string    // UUID v7, generated on creation.
	Code        string    // Unique human-readable identifier.
	Type        string    // One of the AttributeType constants.
	Options     []string  // Option codes for select attributes.
	CreatedAt   time.Time // Timestamp of creation.
}

// IsSelect reports whether the attribute stores option codes.
func (a *Attribute) IsSelect() bool {
	return a.Type == AttributeTypeSimpleSelect || a.Type == AttributeTypeMultiSelect
}

// AddOption appends an option code. Returns ErrInvalidAttributeType when the
// attribute is not a select, ErrInvalidCode for an empty code and
// ErrDuplicateCode when the option already exists.
func (a *Attribute) AddOption(code string) error {
	if !a.IsSelect() {
		return ErrInvalidAttributeType
	}
	if code == "" {
		return ErrInvalidCode
	}
	if a.HasOption(code) {
		return ErrDuplicateCode
	}
	a.Options = append(a.Options, code)
	return nil
}

// HasOption reports whether code is one of the attribute's options.
func (a *Attribute) HasOption(code string) bool {
	return slices.Contains(a.Options, code)
}
