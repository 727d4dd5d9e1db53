package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		category *types.Category
		want     map[string]any
	}{
		{
			name:     "root without locales",
			category: &types.Category{Code: "master"},
			want:     map[string]any{"code": "master", "parent": nil, "labels": map[string]any{}},
		},
		{
			name: "child with declared locales",
			category: &types.Category{
				Code:    "shoes",
				Parent:  &types.Category{Code: "master"},
				Locales: []string{"en_US", "fr_FR"},
				Labels:  map[string]string{"en_US": "Shoes"},
			},
			want: map[string]any{
				"code":   "shoes",
				"parent": "master",
				"labels": map[string]any{"en_US": "Shoes", "fr_FR": nil},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.category))
		})
	}
}

func TestNormalizeProductType(t *testing.T) {
	pt := &types.ProductType{Code: "shirt", Title: "Shirt"}
	_, _ = pt.AddGroup("general", "")
	_, _ = pt.AddField("size", types.AttributeTypeText, "general", "Size")

	assert.Equal(t, map[string]any{
		"code":  "shirt",
		"title": "Shirt",
		"groups": []any{map[string]any{
			"code":   "general",
			"title":  "general",
			"fields": []any{map[string]any{"code": "size", "type": "text", "title": "Size"}},
		}},
	}, NormalizeProductType(pt))
}

func TestNormalizeProduct(t *testing.T) {
	p := &types.Product{Identifier: "sku-1", Document: map[string]any{"family": "x"}}
	got := NormalizeProduct(p)
	assert.Equal(t, map[string]any{"identifier": "sku-1", "family": "x"}, got)
	assert.NotContains(t, p.Document, "identifier", "the stored document is not modified")

	assert.Equal(t, map[string]any{"identifier": "sku-2"}, NormalizeProduct(&types.Product{Identifier: "sku-2"}))
}

func TestNormalizeAttribute(t *testing.T) {
	a := &types.Attribute{Code: "color", Type: types.AttributeTypeSimpleSelect, Options: []string{"red"}}
	assert.Equal(t, map[string]any{"code": "color", "type": "simple_select", "options": []any{"red"}}, NormalizeAttribute(a))
}
