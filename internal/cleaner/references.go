package cleaner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// references holds the codes of every entity a product may point to. It is
// built once per run and read-only afterwards.
type references struct {
	productTypes map[string]bool
	categories   map[string]bool
	attributes   map[string]bool
	options      map[string]map[string]bool // attribute code -> option codes
}

func (c *Cleaner) loadReferences(ctx context.Context) (*references, error) {
	refs := &references{}
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := egCtx.Err(); err != nil {
			return err
		}
		codes, err := catalog.Codes(c.productTypes, func(pt *types.ProductType) string { return pt.Code })
		refs.productTypes = codes
		return err
	})
	eg.Go(func() error {
		if err := egCtx.Err(); err != nil {
			return err
		}
		codes, err := catalog.Codes(c.categories, func(cat *types.Category) string { return cat.Code })
		refs.categories = codes
		return err
	})
	eg.Go(func() error {
		if err := egCtx.Err(); err != nil {
			return err
		}
		all, err := c.attributes.Find(nil)
		if err != nil {
			return err
		}
		refs.attributes = make(map[string]bool, len(all))
		refs.options = make(map[string]map[string]bool, len(all))
		for _, a := range all {
			refs.attributes[a.Code] = true
			opts := make(map[string]bool, len(a.Options))
			for _, o := range a.Options {
				opts[o] = true
			}
			refs.options[a.Code] = opts
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *references) hasOption(attribute, option string) bool {
	return r.options[attribute][option]
}
