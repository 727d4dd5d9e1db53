package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestProductTypeUpdater(t *testing.T) {
	pt := &types.ProductType{Code: "shirt", Title: "Shirt"}
	_, err := pt.AddGroup("general", "General")
	require.NoError(t, err)

	err = NewProductTypeUpdater().Update(pt, Fields{
		{Name: "code", Value: "tshirt"},
		{Name: "title", Value: "T-Shirt"},
		{Name: "groups", Value: []any{"general", "marketing"}},
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "tshirt", pt.Code)
	assert.Equal(t, "T-Shirt", pt.Title)
	require.Len(t, pt.Groups, 2)
	assert.Equal(t, "General", pt.Groups[0].Title, "existing groups are kept as is")
	assert.Equal(t, "marketing", pt.Groups[1].Code)
}

func TestProductTypeUpdaterNullTitleResetsToCode(t *testing.T) {
	pt := &types.ProductType{Code: "shirt", Title: "Shirt"}
	require.NoError(t, NewProductTypeUpdater().Update(pt, Fields{{Name: "title", Value: nil}}, Options{}))
	assert.Equal(t, "shirt", pt.Title)
}

func TestProductTypeUpdaterErrors(t *testing.T) {
	tests := []struct {
		name    string
		object  any
		field   Field
		wantErr error
	}{
		{name: "wrong object", object: &types.Category{}, field: Field{Name: "code", Value: "x"}, wantErr: ErrInvalidObjectType},
		{name: "unknown field", object: &types.ProductType{}, field: Field{Name: "parent", Value: "x"}, wantErr: ErrUnknownProperty},
		{name: "groups must be a list", object: &types.ProductType{}, field: Field{Name: "groups", Value: "general"}, wantErr: ErrArrayExpected},
		{name: "group codes must be scalar", object: &types.ProductType{}, field: Field{Name: "groups", Value: []any{map[string]any{}}}, wantErr: ErrStructureExpected},
		{name: "empty group code", object: &types.ProductType{}, field: Field{Name: "groups", Value: []any{""}}, wantErr: ErrInvalidPropertyValue},
		{name: "title must be scalar", object: &types.ProductType{}, field: Field{Name: "title", Value: []any{}}, wantErr: ErrScalarExpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewProductTypeUpdater().Update(tt.object, Fields{tt.field}, Options{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
