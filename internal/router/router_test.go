package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	r, err := New("http://catalog.test/", DefaultRoutes)
	require.NoError(t, err)
	return r
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		route  string
		params map[string]string
		want   string
	}{
		{
			name:  "list without params",
			route: RouteCategoryList,
			want:  "http://catalog.test/api/rest/v1/categories",
		},
		{
			name:   "query sorted by key",
			route:  RouteCategoryList,
			params: map[string]string{"page": "2", "limit": "10", "parent": "master"},
			want:   "http://catalog.test/api/rest/v1/categories?limit=10&page=2&parent=master",
		},
		{
			name:   "placeholder substituted",
			route:  RouteCategoryGet,
			params: map[string]string{"code": "shoes"},
			want:   "http://catalog.test/api/rest/v1/categories/shoes",
		},
		{
			name:   "placeholder escaped",
			route:  RouteProductGet,
			params: map[string]string{"identifier": "sku 1/2"},
			want:   "http://catalog.test/api/rest/v1/products/sku%201%2F2",
		},
		{
			name:   "extra params become query",
			route:  RouteProductTypeGet,
			params: map[string]string{"code": "shirt", "with": "groups"},
			want:   "http://catalog.test/api/rest/v1/product-types/shirt?with=groups",
		},
	}

	r := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Generate(tt.route, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	r := newTestRouter(t)

	_, err := r.Generate("nope", nil)
	assert.ErrorIs(t, err, ErrRouteNotFound)

	_, err = r.Generate(RouteCategoryGet, map[string]string{"identifier": "shoes"})
	assert.ErrorIs(t, err, ErrMissingParameter)

	_, err = r.Generate(RouteCategoryGet, map[string]string{"code": ""})
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestNew(t *testing.T) {
	_, err := New("not a url", DefaultRoutes)
	assert.ErrorIs(t, err, ErrInvalidBaseURL)

	_, err = New("", map[string]string{"bad": "no-slash"})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	r, err := New("", DefaultRoutes)
	require.NoError(t, err)
	got, err := r.Generate(RouteAttributeGet, map[string]string{"code": "color"})
	require.NoError(t, err)
	assert.Equal(t, "/api/rest/v1/attributes/color", got)
	assert.True(t, r.Has(RouteAttributeList))
	assert.False(t, r.Has("missing"))
}
