package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShirtType(t *testing.T) *ProductType {
	t.Helper()
	pt := &ProductType{Code: "shirt", Title: "Shirt"}
	_, err := pt.AddGroup("general", "General")
	require.NoError(t, err)
	_, err = pt.AddGroup("marketing", "")
	require.NoError(t, err)
	_, err = pt.AddField("name", AttributeTypeText, "general", "Name")
	require.NoError(t, err)
	_, err = pt.AddField("color", AttributeTypeSimpleSelect, "marketing", "")
	require.NoError(t, err)
	return pt
}

func TestProductTypeGroups(t *testing.T) {
	pt := newShirtType(t)

	g, err := pt.GetGroup("marketing")
	require.NoError(t, err)
	assert.Equal(t, "marketing", g.Title, "empty title defaults to the code")

	_, err = pt.AddGroup("general", "again")
	assert.ErrorIs(t, err, ErrDuplicateCode)

	_, err = pt.AddGroup("", "")
	assert.ErrorIs(t, err, ErrInvalidCode)

	require.NoError(t, pt.RemoveGroup("marketing"))
	_, err = pt.GetField("color")
	assert.ErrorIs(t, err, ErrFieldNotFound, "removing a group removes its fields")

	assert.ErrorIs(t, pt.RemoveGroup("marketing"), ErrGroupNotFound)
}

func TestProductTypeFields(t *testing.T) {
	pt := newShirtType(t)

	f, err := pt.GetField("color")
	require.NoError(t, err)
	assert.Equal(t, "color", f.Title)
	assert.Equal(t, AttributeTypeSimpleSelect, f.Type)

	tests := []struct {
		name      string
		code      string
		fieldType string
		group     string
		wantErr   error
	}{
		{name: "empty code", code: "", fieldType: AttributeTypeText, group: "general", wantErr: ErrInvalidCode},
		{name: "unknown type", code: "price", fieldType: "money", group: "general", wantErr: ErrInvalidAttributeType},
		{name: "unknown group", code: "price", fieldType: AttributeTypeNumber, group: "missing", wantErr: ErrGroupNotFound},
		{name: "code unique across groups", code: "name", fieldType: AttributeTypeText, group: "marketing", wantErr: ErrDuplicateCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pt.AddField(tt.code, tt.fieldType, tt.group, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	require.NoError(t, pt.RemoveField("name"))
	assert.ErrorIs(t, pt.RemoveField("name"), ErrFieldNotFound)
}

func TestProductTypeSetTitle(t *testing.T) {
	pt := &ProductType{Code: "shirt"}
	pt.SetTitle("Shirts")
	assert.Equal(t, "Shirts", pt.Title)
	pt.SetTitle("")
	assert.Equal(t, "shirt", pt.Title)
}

func TestProductTypeNewProduct(t *testing.T) {
	pt := newShirtType(t)

	p := pt.NewProduct("sku-1")

	assert.Equal(t, "sku-1", p.Identifier)
	assert.Equal(t, "shirt", p.ProductTypeCode())
	assert.Equal(t, []any{
		map[string]any{ValueAttribute: "name", ValueData: nil},
		map[string]any{ValueAttribute: "color", ValueData: nil},
	}, p.Document[DocValues])
}
