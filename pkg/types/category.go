package types

import (
	"slices"
	"time"
)

// Category is a node of the catalog classification tree. Code is the
// identity exposed to API clients; CategoryID is the storage key.
//
// Parent is hydrated by the backend as a shallow reference carrying only
// CategoryID and Code.
type Category struct {
	CategoryID string            // UUID v7, generated on creation.
	Code       string            // Unique human-readable identifier.
	Parent     *Category         // Parent category; nil for a tree root.
	Locales    []string          // Locales declared on the category, in registration order.
	Labels     map[string]string // Label text keyed by locale code.
	CreatedAt  time.Time         // Timestamp of creation.
	UpdatedAt  time.Time         // Timestamp of last modification.
}

// SetCode replaces the category code.
func (c *Category) SetCode(code string) {
	c.Code = code
	c.UpdatedAt = time.Now()
}

// SetParent attaches the category under parent. A nil parent makes the
// category a tree root.
func (c *Category) SetParent(parent *Category) {
	c.Parent = parent
	c.UpdatedAt = time.Now()
}

// SetLocale declares locale as present on the category. It does not touch
// Labels. Idempotent.
func (c *Category) SetLocale(locale string) {
	if slices.Contains(c.Locales, locale) {
		return
	}
	c.Locales = append(c.Locales, locale)
	c.UpdatedAt = time.Now()
}

// ParentCode returns the code of the parent category, or "" for a root.
func (c *Category) ParentCode() string {
	if c.Parent == nil {
		return ""
	}
	return c.Parent.Code
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.Parent == nil
}
