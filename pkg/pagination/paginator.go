// Package pagination turns a page of items into a HAL collection resource with
// navigation links, and validates the page and limit parameters that select it.
package pagination

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/mesh-intelligence/catalog/pkg/hal"
)

// EmbeddedItems is the embedded key holding the page items.
const EmbeddedItems = "items"

// URLGenerator builds an absolute URL for a named route.
type URLGenerator interface {
	Generate(route string, params map[string]string) (string, error)
}

// Options selects a page. Query holds extra parameters carried on every
// navigation link.
type Options struct {
	Page  int
	Limit int
	Query map[string]string
}

// Offset returns the index of the first item of the page.
func (o Options) Offset() int {
	if o.Page < 1 {
		return 0
	}
	return (o.Page - 1) * o.Limit
}

func (o Options) params(page int) map[string]string {
	p := maps.Clone(o.Query)
	if p == nil {
		p = make(map[string]string, 2)
	}
	p[ParamPage] = strconv.Itoa(page)
	p[ParamLimit] = strconv.Itoa(o.Limit)
	return p
}

// LastPage returns the number of the last page: 1 when count is 0, otherwise
// ceil(count / limit).
func LastPage(limit, count int) int {
	if count == 0 || limit < 1 {
		return 1
	}
	return (count + limit - 1) / limit
}

// HALPaginator builds paginated HAL collections.
type HALPaginator struct {
	urls URLGenerator
}

func NewHALPaginator(urls URLGenerator) *HALPaginator {
	return &HALPaginator{urls: urls}
}

// Paginate returns the serialized collection resource for one page of items.
// See Page.
func (p *HALPaginator) Paginate(items []map[string]any, opts Options, count int, listRoute, itemRoute, itemIdentifier string) (map[string]any, error) {
	r, err := p.Page(items, opts, count, listRoute, itemRoute, itemIdentifier)
	if err != nil {
		return nil, err
	}
	return r.ToMap(), nil
}

// Page builds the collection resource for one page of items. The collection
// carries current_page, pages_count and items_count; every item is embedded
// under "items" with a self link generated from itemRoute with the item's
// itemIdentifier value. Links first and last are always present; previous and
// next only when the neighbouring page lies in 1..last. A page past the last
// gets neither.
func (p *HALPaginator) Page(items []map[string]any, opts Options, count int, listRoute, itemRoute, itemIdentifier string) (*hal.Resource, error) {
	lastPage := LastPage(opts.Limit, count)

	self, err := p.generate(listRoute, opts.params(opts.Page))
	if err != nil {
		return nil, err
	}
	collection := hal.NewResource(self, map[string]any{
		"current_page": opts.Page,
		"pages_count":  lastPage,
		"items_count":  count,
	})
	collection.SetEmbedded(EmbeddedItems, nil)

	for _, item := range items {
		href, err := p.generate(itemRoute, map[string]string{itemIdentifier: identifierString(item[itemIdentifier])})
		if err != nil {
			return nil, err
		}
		collection.AddEmbedded(EmbeddedItems, hal.NewResource(href, item))
	}

	nav := []struct {
		rel  string
		page int
		ok   bool
	}{
		{hal.RelFirst, 1, true},
		{hal.RelLast, lastPage, true},
		{hal.RelPrevious, opts.Page - 1, opts.Page >= 2 && opts.Page <= lastPage},
		{hal.RelNext, opts.Page + 1, opts.Page+1 <= lastPage},
	}
	for _, n := range nav {
		if !n.ok {
			continue
		}
		href, err := p.generate(listRoute, opts.params(n.page))
		if err != nil {
			return nil, err
		}
		collection.AddLink(hal.NewLink(n.rel, href))
	}

	return collection, nil
}

func (p *HALPaginator) generate(route string, params map[string]string) (string, error) {
	return p.urls.Generate(route, params)
}

func identifierString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
