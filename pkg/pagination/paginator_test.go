package pagination

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/hal"
)

var errRouteNotFound = errors.New("route not found")

// fakeURLs renders route?k=v&... with sorted keys.
type fakeURLs struct {
	fail string
}

func (f fakeURLs) Generate(route string, params map[string]string) (string, error) {
	if route == f.fail {
		return "", errRouteNotFound
	}
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(params)) {
		parts = append(parts, k+"="+params[k])
	}
	return "http://catalog.test/" + route + "?" + strings.Join(parts, "&"), nil
}

func links(t *testing.T, page map[string]any) map[string]string {
	t.Helper()
	raw, ok := page[hal.KeyLinks].(map[string]any)
	require.True(t, ok)
	out := map[string]string{}
	for rel, v := range raw {
		out[rel] = v.(map[string]any)["href"].(string)
	}
	return out
}

func TestLastPage(t *testing.T) {
	tests := []struct {
		limit, count, want int
	}{
		{10, 0, 1},
		{10, 1, 1},
		{10, 10, 1},
		{10, 11, 2},
		{10, 95, 10},
		{1, 3, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LastPage(tt.limit, tt.count), "limit=%d count=%d", tt.limit, tt.count)
	}
}

func TestPaginateNavigationLinks(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		count     int
		wantPages int
		want      map[string]string
	}{
		{
			name: "empty collection", page: 1, count: 0, wantPages: 1,
			want: map[string]string{
				"self":  "http://catalog.test/list?limit=10&page=1",
				"first": "http://catalog.test/list?limit=10&page=1",
				"last":  "http://catalog.test/list?limit=10&page=1",
			},
		},
		{
			name: "first of ten pages", page: 1, count: 95, wantPages: 10,
			want: map[string]string{
				"self":  "http://catalog.test/list?limit=10&page=1",
				"first": "http://catalog.test/list?limit=10&page=1",
				"last":  "http://catalog.test/list?limit=10&page=10",
				"next":  "http://catalog.test/list?limit=10&page=2",
			},
		},
		{
			name: "middle page", page: 5, count: 95, wantPages: 10,
			want: map[string]string{
				"self":     "http://catalog.test/list?limit=10&page=5",
				"first":    "http://catalog.test/list?limit=10&page=1",
				"last":     "http://catalog.test/list?limit=10&page=10",
				"previous": "http://catalog.test/list?limit=10&page=4",
				"next":     "http://catalog.test/list?limit=10&page=6",
			},
		},
		{
			name: "last page", page: 10, count: 95, wantPages: 10,
			want: map[string]string{
				"self":     "http://catalog.test/list?limit=10&page=10",
				"first":    "http://catalog.test/list?limit=10&page=1",
				"last":     "http://catalog.test/list?limit=10&page=10",
				"previous": "http://catalog.test/list?limit=10&page=9",
			},
		},
		{
			name: "beyond the last page", page: 12, count: 95, wantPages: 10,
			want: map[string]string{
				"self":  "http://catalog.test/list?limit=10&page=12",
				"first": "http://catalog.test/list?limit=10&page=1",
				"last":  "http://catalog.test/list?limit=10&page=10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewHALPaginator(fakeURLs{})
			got, err := p.Paginate(nil, Options{Page: tt.page, Limit: 10}, tt.count, "list", "item", "code")
			require.NoError(t, err)

			assert.Equal(t, tt.page, got["current_page"])
			assert.Equal(t, tt.wantPages, got["pages_count"])
			assert.Equal(t, tt.count, got["items_count"])
			if diff := cmp.Diff(tt.want, links(t, got)); diff != "" {
				t.Errorf("links mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginateEmbedsItems(t *testing.T) {
	items := []map[string]any{
		{"code": "boots", "parent": "shoes"},
		{"code": 42, "parent": nil},
	}
	p := NewHALPaginator(fakeURLs{})

	got, err := p.Paginate(items, Options{Page: 1, Limit: 10}, 2, "list", "item", "code")
	require.NoError(t, err)

	want := map[string]any{
		"items": []any{
			map[string]any{
				"_links": map[string]any{"self": map[string]any{"href": "http://catalog.test/item?code=boots"}},
				"code":   "boots",
				"parent": "shoes",
			},
			map[string]any{
				"_links": map[string]any{"self": map[string]any{"href": "http://catalog.test/item?code=42"}},
				"code":   42,
				"parent": nil,
			},
		},
	}
	if diff := cmp.Diff(want, got[hal.KeyEmbedded]); diff != "" {
		t.Errorf("_embedded mismatch (-want +got):\n%s", diff)
	}
}

func TestPaginateEmptyItemsStillEmbedded(t *testing.T) {
	got, err := NewHALPaginator(fakeURLs{}).Paginate(nil, Options{Page: 1, Limit: 10}, 0, "list", "item", "code")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"items": []any{}}, got[hal.KeyEmbedded])
}

func TestPaginateItemRouteUsesIdentifierField(t *testing.T) {
	items := []map[string]any{{"identifier": "sku-1"}}

	got, err := NewHALPaginator(fakeURLs{}).Paginate(items, Options{Page: 1, Limit: 10}, 1, "list", "product", "identifier")
	require.NoError(t, err)

	children := got[hal.KeyEmbedded].(map[string]any)["items"].([]any)
	self := children[0].(map[string]any)[hal.KeyLinks].(map[string]any)["self"].(map[string]any)["href"]
	assert.Equal(t, "http://catalog.test/product?identifier=sku-1", self)
}

func TestPaginateCarriesQuery(t *testing.T) {
	opts := Options{Page: 2, Limit: 5, Query: map[string]string{"parent": "master"}}

	got, err := NewHALPaginator(fakeURLs{}).Paginate(nil, opts, 12, "list", "item", "code")
	require.NoError(t, err)

	for rel, href := range links(t, got) {
		assert.Contains(t, href, "parent=master", rel)
	}
	assert.Equal(t, map[string]string{"parent": "master"}, opts.Query, "options must not be modified")
}

func TestPaginatePropagatesURLErrors(t *testing.T) {
	tests := []struct {
		name  string
		fail  string
		items []map[string]any
	}{
		{name: "list route", fail: "list"},
		{name: "item route", fail: "item", items: []map[string]any{{"code": "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHALPaginator(fakeURLs{fail: tt.fail}).Paginate(tt.items, Options{Page: 1, Limit: 10}, 1, "list", "item", "code")
			assert.Same(t, errRouteNotFound, err)
		})
	}
}

func TestOptionsOffset(t *testing.T) {
	assert.Equal(t, 0, Options{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Options{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Options{}.Offset())
}
