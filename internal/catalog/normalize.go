package catalog

import (
	"maps"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// NormalizeCategory returns the API representation of a category. parent is
// null for a root.
func NormalizeCategory(c *types.Category) map[string]any {
	var parent any
	if c.Parent != nil {
		parent = c.Parent.Code
	}
	// Every declared locale appears; one without label text maps to null.
	labels := make(map[string]any, len(c.Locales))
	for _, locale := range c.Locales {
		if label, ok := c.Labels[locale]; ok {
			labels[locale] = label
		} else {
			labels[locale] = nil
		}
	}
	return map[string]any{
		"code":   c.Code,
		"parent": parent,
		"labels": labels,
	}
}

// NormalizeProductType returns the API representation of a product type.
func NormalizeProductType(pt *types.ProductType) map[string]any {
	groups := make([]any, 0, len(pt.Groups))
	for _, g := range pt.Groups {
		fields := make([]any, 0, len(g.Fields))
		for _, f := range g.Fields {
			fields = append(fields, map[string]any{
				"code":  f.Code,
				"type":  f.Type,
				"title": f.Title,
			})
		}
		groups = append(groups, map[string]any{
			"code":   g.Code,
			"title":  g.Title,
			"fields": fields,
		})
	}
	return map[string]any{
		"code":   pt.Code,
		"title":  pt.Title,
		"groups": groups,
	}
}

// NormalizeAttribute returns the API representation of an attribute.
func NormalizeAttribute(a *types.Attribute) map[string]any {
	options := make([]any, 0, len(a.Options))
	for _, o := range a.Options {
		options = append(options, o)
	}
	return map[string]any{
		"code":    a.Code,
		"type":    a.Type,
		"options": options,
	}
}

// NormalizeProduct returns a copy of the product document with its
// identifier set.
func NormalizeProduct(p *types.Product) map[string]any {
	doc := maps.Clone(p.Document)
	if doc == nil {
		doc = map[string]any{}
	}
	doc[types.DocIdentifier] = p.Identifier
	return doc
}

func normalizeAll[T any](items []T, normalize func(T) map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, normalize(it))
	}
	return out
}
