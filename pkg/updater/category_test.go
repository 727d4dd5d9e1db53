package updater

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// fakeCategories resolves categories from a map and counts lookups.
type fakeCategories struct {
	byCode  map[string]*types.Category
	err     error
	lookups int
}

func (f *fakeCategories) FindOneByIdentifier(code string) (*types.Category, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byCode[code]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", code, types.ErrNotFound)
	}
	return c, nil
}

func newFakeCategories(codes ...string) *fakeCategories {
	f := &fakeCategories{byCode: map[string]*types.Category{}}
	for _, code := range codes {
		f.byCode[code] = &types.Category{CategoryID: "id-" + code, Code: code}
	}
	return f
}

func TestCategoryUpdaterAppliesRecognizedFields(t *testing.T) {
	repo := newFakeCategories("master")
	u := NewCategoryUpdater(repo)
	c := &types.Category{Code: "old"}

	err := u.Update(c, Fields{
		{Name: "code", Value: "shoes"},
		{Name: "parent", Value: "master"},
		{Name: "labels", Value: map[string]any{"fr_FR": "Chaussures", "en_US": "Shoes", "de_DE": nil}},
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "shoes", c.Code)
	assert.Equal(t, "master", c.ParentCode())
	assert.Equal(t, []string{"de_DE", "en_US", "fr_FR"}, c.Locales)
	assert.Empty(t, c.Labels, "labels only declare locales")
}

func TestCategoryUpdaterRejectsWrongObject(t *testing.T) {
	u := NewCategoryUpdater(newFakeCategories())

	for _, obj := range []any{&types.ProductType{}, types.Category{}, nil, (*types.Category)(nil)} {
		err := u.Update(obj, Fields{{Name: "code", Value: "x"}}, Options{})
		assert.ErrorIs(t, err, ErrInvalidObjectType, "%T", obj)
	}
}

func TestCategoryUpdaterUnknownPropertyAnyPosition(t *testing.T) {
	valid := Fields{
		{Name: "code", Value: "shoes"},
		{Name: "labels", Value: map[string]any{"en_US": "Shoes"}},
	}

	for pos := 0; pos <= len(valid); pos++ {
		t.Run(fmt.Sprintf("position %d", pos), func(t *testing.T) {
			fields := append(Fields{}, valid[:pos]...)
			fields = append(fields, Field{Name: "colour", Value: "red"})
			fields = append(fields, valid[pos:]...)

			err := NewCategoryUpdater(newFakeCategories()).Update(&types.Category{}, fields, Options{})

			var uerr *Error
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, UnknownProperty, uerr.Kind)
			assert.Equal(t, "colour", uerr.Property)
		})
	}
}

func TestCategoryUpdaterShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		wantErr  error
		wantProp string
	}{
		{name: "code must be scalar", field: Field{Name: "code", Value: []any{"a"}}, wantErr: ErrScalarExpected, wantProp: "code"},
		{name: "code must not be null", field: Field{Name: "code", Value: nil}, wantErr: ErrScalarExpected, wantProp: "code"},
		{name: "parent must be scalar", field: Field{Name: "parent", Value: map[string]any{"code": "a"}}, wantErr: ErrScalarExpected, wantProp: "parent"},
		{name: "labels must be an array", field: Field{Name: "labels", Value: "Shoes"}, wantErr: ErrArrayExpected, wantProp: "labels"},
		{name: "label values must be scalar", field: Field{Name: "labels", Value: map[string]any{"en_US": []any{"Shoes"}}}, wantErr: ErrStructureExpected, wantProp: "labels"},
		{name: "labels must be indexed by locale", field: Field{Name: "labels", Value: []any{"Shoes"}}, wantErr: ErrStructureExpected, wantProp: "labels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &types.Category{Code: "shoes"}
			err := NewCategoryUpdater(newFakeCategories()).Update(c, Fields{tt.field}, Options{})

			assert.ErrorIs(t, err, tt.wantErr)
			var uerr *Error
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, tt.wantProp, uerr.Property)
			assert.Equal(t, tt.field.Value, uerr.Value)
			assert.Equal(t, "category", uerr.Target)
			assert.Equal(t, "update", uerr.Action)
		})
	}
}

func TestCategoryUpdaterEmptyLabelList(t *testing.T) {
	c := &types.Category{Code: "shoes"}
	err := NewCategoryUpdater(newFakeCategories()).Update(c, Fields{{Name: "labels", Value: []any{}}}, Options{})
	require.NoError(t, err)
	assert.Empty(t, c.Locales)
}

func TestCategoryUpdaterClearsParentWithoutLookup(t *testing.T) {
	for _, v := range []any{nil, ""} {
		repo := newFakeCategories("master")
		c := &types.Category{Code: "shoes", Parent: &types.Category{Code: "master"}}

		err := NewCategoryUpdater(repo).Update(c, Fields{{Name: "parent", Value: v}}, Options{})

		require.NoError(t, err)
		assert.Nil(t, c.Parent)
		assert.Zero(t, repo.lookups, "clearing the parent must not query the repository")
	}
}

func TestCategoryUpdaterUnresolvableParent(t *testing.T) {
	repo := newFakeCategories("master")
	original := &types.Category{Code: "master"}
	c := &types.Category{Code: "shoes", Parent: original}

	err := NewCategoryUpdater(repo).Update(c, Fields{{Name: "parent", Value: "ghost"}}, Options{})

	assert.ErrorIs(t, err, ErrInvalidPropertyValue)
	assert.Contains(t, err.Error(), `"ghost" given`)
	assert.Same(t, original, c.Parent, "relation must be untouched")
}

func TestCategoryUpdaterResolverFailurePropagates(t *testing.T) {
	boom := errors.New("database is locked")
	repo := &fakeCategories{err: boom}

	err := NewCategoryUpdater(repo).Update(&types.Category{}, Fields{{Name: "parent", Value: "master"}}, Options{})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidPropertyValue)
}

func TestCategoryUpdaterNumericParentCode(t *testing.T) {
	repo := newFakeCategories("2024")
	c := &types.Category{Code: "shoes"}

	err := NewCategoryUpdater(repo).Update(c, Fields{{Name: "parent", Value: 2024}}, Options{})

	require.NoError(t, err)
	assert.Equal(t, "2024", c.ParentCode())
}

func TestCategoryUpdaterPartialApplication(t *testing.T) {
	c := &types.Category{Code: "old"}

	err := NewCategoryUpdater(newFakeCategories()).Update(c, Fields{
		{Name: "code", Value: "shoes"},
		{Name: "labels", Value: map[string]any{"en_US": "Shoes"}},
		{Name: "parent", Value: "ghost"},
	}, Options{})

	assert.ErrorIs(t, err, ErrInvalidPropertyValue)
	assert.Equal(t, "shoes", c.Code, "fields before the failure stay applied")
	assert.Equal(t, []string{"en_US"}, c.Locales)
}

func TestCategoryUpdaterValidateFirst(t *testing.T) {
	c := &types.Category{Code: "old"}

	err := NewCategoryUpdater(newFakeCategories()).Update(c, Fields{
		{Name: "code", Value: "shoes"},
		{Name: "labels", Value: "not an array"},
	}, Options{ValidateFirst: true})

	assert.ErrorIs(t, err, ErrArrayExpected)
	assert.Equal(t, "old", c.Code, "nothing is applied when a shape check fails")
}

func TestCategoryUpdaterFields(t *testing.T) {
	assert.Equal(t, []string{"code", "labels", "parent"}, NewCategoryUpdater(nil).Fields())
}
