// Package cleaner removes references to deleted entities from stored product
// documents: the product type, category codes, values of missing attributes
// and missing select options.
package cleaner

import (
	"context"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Kinds of missing entities in a Report.
const (
	KindProductType = "product_type"
	KindCategory    = "category"
	KindAttribute   = "attribute"
	KindOption      = "option"
)

// Options tunes a run.
type Options struct {
	// DryRun reports what would change without storing anything.
	DryRun bool
}

// Invalid is a document the cleaner skipped because it does not have the
// expected shape.
type Invalid struct {
	Identifier string   `json:"identifier"`
	Errors     []string `json:"errors"`
}

// Report summarizes a run.
type Report struct {
	DryRun  bool                      `json:"dry_run"`
	Checked int                       `json:"checked"`
	Cleaned []string                  `json:"cleaned"`
	Invalid []Invalid                 `json:"invalid"`
	Missing map[string]map[string]int `json:"missing"` // kind -> code -> references removed
}

func newReport(dryRun bool) *Report {
	return &Report{
		DryRun:  dryRun,
		Cleaned: []string{},
		Invalid: []Invalid{},
		Missing: map[string]map[string]int{},
	}
}

func (r *Report) addMissing(kind, code string) {
	if r.Missing[kind] == nil {
		r.Missing[kind] = map[string]int{}
	}
	r.Missing[kind][code]++
}

// MissingCount returns the total number of references removed.
func (r *Report) MissingCount() int {
	n := 0
	for _, codes := range r.Missing {
		for _, c := range codes {
			n += c
		}
	}
	return n
}

// Cleaner walks the products of a catalog.
type Cleaner struct {
	logger *zap.Logger
	schema *gojsonschema.Schema

	products     *catalog.Repository[*types.Product]
	productTypes *catalog.Repository[*types.ProductType]
	categories   *catalog.Repository[*types.Category]
	attributes   *catalog.Repository[*types.Attribute]
}

// New returns a Cleaner over an attached catalog. A nil logger discards log
// output.
func New(c types.Catalog, logger *zap.Logger) (*Cleaner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sch, err := compileSchema()
	if err != nil {
		return nil, err
	}
	cl := &Cleaner{logger: logger, schema: sch}
	if cl.products, err = catalog.NewProductRepository(c); err != nil {
		return nil, err
	}
	if cl.productTypes, err = catalog.NewProductTypeRepository(c); err != nil {
		return nil, err
	}
	if cl.categories, err = catalog.NewCategoryRepository(c); err != nil {
		return nil, err
	}
	if cl.attributes, err = catalog.NewAttributeRepository(c); err != nil {
		return nil, err
	}
	return cl, nil
}

// Run checks every product and stores the cleaned documents unless
// opts.DryRun is set.
func (c *Cleaner) Run(ctx context.Context, opts Options) (*Report, error) {
	refs, err := c.loadReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading references: %w", err)
	}
	products, err := c.products.Find(nil)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	report := newReport(opts.DryRun)
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		msgs, err := validate(c.schema, p.Document)
		if err != nil {
			return report, fmt.Errorf("product %q: %w", p.Identifier, err)
		}
		if len(msgs) > 0 {
			c.logger.Warn("skipped invalid product", zap.String("identifier", p.Identifier), zap.Strings("errors", msgs))
			report.Invalid = append(report.Invalid, Invalid{Identifier: p.Identifier, Errors: msgs})
			continue
		}

		if !cleanDocument(p.Document, refs, report) {
			continue
		}
		report.Cleaned = append(report.Cleaned, p.Identifier)
		if opts.DryRun {
			continue
		}
		if err := c.products.Save(p); err != nil {
			return report, fmt.Errorf("saving product %q: %w", p.Identifier, err)
		}
		c.logger.Debug("cleaned product", zap.String("identifier", p.Identifier))
	}

	c.logger.Info("cleaned products",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("checked", report.Checked),
		zap.Int("cleaned", len(report.Cleaned)),
		zap.Int("invalid", len(report.Invalid)),
		zap.Int("missing", report.MissingCount()))
	return report, nil
}

// cleanDocument removes dangling references from doc and reports whether it
// changed.
func cleanDocument(doc map[string]any, refs *references, report *Report) bool {
	changed := checkProductType(doc, refs, report)
	changed = checkCategories(doc, refs, report) || changed
	changed = checkValues(doc, refs, report) || changed
	return changed
}

func checkProductType(doc map[string]any, refs *references, report *Report) bool {
	code, _ := doc[types.DocProductType].(string)
	if code == "" {
		return false
	}

	changed := false
	normalized, _ := doc[types.DocNormalized].(map[string]any)
	if pt, ok := normalized[types.DocProductType].(map[string]any); ok {
		if label, ok := pt["label"]; ok {
			pt["labels"] = label
			delete(pt, "label")
			changed = true
		}
	}

	if refs.productTypes[code] {
		return changed
	}
	report.addMissing(KindProductType, code)
	delete(doc, types.DocProductType)
	delete(doc, types.DocCompletenesses)
	if normalized != nil {
		delete(normalized, types.DocProductType)
		delete(normalized, types.DocCompletenesses)
	}
	return true
}

func checkCategories(doc map[string]any, refs *references, report *Report) bool {
	codes, ok := doc[types.DocCategories].([]any)
	if !ok {
		return false
	}
	kept := make([]any, 0, len(codes))
	for _, c := range codes {
		code, _ := c.(string)
		if refs.categories[code] {
			kept = append(kept, c)
			continue
		}
		report.addMissing(KindCategory, code)
	}
	if len(kept) == len(codes) {
		return false
	}
	doc[types.DocCategories] = kept
	return true
}

func checkValues(doc map[string]any, refs *references, report *Report) bool {
	values, ok := doc[types.DocValues].([]any)
	if !ok {
		return false
	}

	changed := false
	kept := make([]any, 0, len(values))
	for _, v := range values {
		value, _ := v.(map[string]any)
		attribute, _ := value[types.ValueAttribute].(string)
		if !refs.attributes[attribute] {
			report.addMissing(KindAttribute, attribute)
			changed = true
			continue
		}
		if option, ok := value[types.ValueOption].(string); ok && option != "" && !refs.hasOption(attribute, option) {
			report.addMissing(KindOption, optionKey(attribute, option))
			changed = true
			continue
		}
		if checkOptions(value, attribute, refs, report) {
			changed = true
		}
		kept = append(kept, value)
	}
	if changed {
		doc[types.DocValues] = kept
	}
	return changed
}

// checkOptions drops the missing entries of a multi-option value.
func checkOptions(value map[string]any, attribute string, refs *references, report *Report) bool {
	options, ok := value[types.ValueOptions].([]any)
	if !ok {
		return false
	}
	kept := make([]any, 0, len(options))
	for _, o := range options {
		option, _ := o.(string)
		if refs.hasOption(attribute, option) {
			kept = append(kept, o)
			continue
		}
		report.addMissing(KindOption, optionKey(attribute, option))
	}
	if len(kept) == len(options) {
		return false
	}
	value[types.ValueOptions] = kept
	return true
}

func optionKey(attribute, option string) string {
	return attribute + " > " + option
}
