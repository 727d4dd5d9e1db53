package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/catalog/internal/router"
	"github.com/mesh-intelligence/catalog/pkg/hal"
	"github.com/mesh-intelligence/catalog/pkg/pagination"
	"github.com/mesh-intelligence/catalog/pkg/types"
	"github.com/mesh-intelligence/catalog/pkg/updater"
)

// Pagination defaults.
const (
	DefaultLimitMax = 100
	DefaultLimit    = 10
)

// maxImportLine bounds one product document in an import stream.
const maxImportLine = 16 * 1024 * 1024

// Config tunes a Service.
type Config struct {
	LimitMax     int // Largest accepted page size.
	LimitDefault int // Page size used when the caller gives none.
}

// Service runs catalog operations against an attached catalog.
type Service struct {
	logger    *zap.Logger
	urls      pagination.URLGenerator
	validator *pagination.ParameterValidator
	paginator *pagination.HALPaginator
	limit     int

	categories   *Repository[*types.Category]
	productTypes *Repository[*types.ProductType]
	attributes   *Repository[*types.Attribute]
	products     *Repository[*types.Product]

	manager            *ProductTypeManager
	categoryUpdater    *updater.CategoryUpdater
	productTypeUpdater *updater.ProductTypeUpdater
}

// NewService returns a Service over c. urls renders the links of returned
// resources. A nil logger discards log output.
func NewService(c types.Catalog, urls pagination.URLGenerator, cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LimitMax < 1 {
		cfg.LimitMax = DefaultLimitMax
	}
	if cfg.LimitDefault < 1 {
		cfg.LimitDefault = DefaultLimit
	}
	cfg.LimitDefault = min(cfg.LimitDefault, cfg.LimitMax)

	s := &Service{
		logger:             logger,
		urls:               urls,
		validator:          pagination.NewParameterValidator(cfg.LimitMax),
		paginator:          pagination.NewHALPaginator(urls),
		limit:              cfg.LimitDefault,
		productTypeUpdater: updater.NewProductTypeUpdater(),
	}

	var err error
	if s.categories, err = NewCategoryRepository(c); err != nil {
		return nil, err
	}
	if s.productTypes, err = NewProductTypeRepository(c); err != nil {
		return nil, err
	}
	if s.attributes, err = NewAttributeRepository(c); err != nil {
		return nil, err
	}
	if s.products, err = NewProductRepository(c); err != nil {
		return nil, err
	}
	s.manager = NewProductTypeManager(s.productTypes)
	s.categoryUpdater = updater.NewCategoryUpdater(s.categories)
	return s, nil
}

// listPage validates params, loads one page from repo and wraps it in a
// paginated HAL resource. Parameters other than page and limit are passed to
// the table as filters.
func listPage[T any](s *Service, repo *Repository[T], params map[string]string, normalize func(T) map[string]any, listRoute, itemRoute, itemIdentifier string) (*hal.Resource, error) {
	opts, err := s.validator.Validate(pagination.Defaults(params, 1, s.limit))
	if err != nil {
		return nil, err
	}
	filter := types.Filter{}
	for k, v := range opts.Query {
		filter[k] = v
	}
	items, total, err := repo.FindPage(filter, opts)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("listed page",
		zap.String("route", listRoute),
		zap.Int("page", opts.Page),
		zap.Int("limit", opts.Limit),
		zap.Int("total", total))
	return s.paginator.Page(normalizeAll(items, normalize), opts, total, listRoute, itemRoute, itemIdentifier)
}

func (s *Service) resource(route, param, value string, data map[string]any) (*hal.Resource, error) {
	self, err := s.urls.Generate(route, map[string]string{param: value})
	if err != nil {
		return nil, fmt.Errorf("generating url for route %q: %w", route, err)
	}
	return hal.NewResource(self, data), nil
}

// ListCategories returns one page of categories. Accepted filters are code
// and parent; an empty parent selects the roots.
func (s *Service) ListCategories(params map[string]string) (*hal.Resource, error) {
	return listPage(s, s.categories, params, NormalizeCategory, router.RouteCategoryList, router.RouteCategoryGet, "code")
}

// GetCategory returns the category with the given code.
func (s *Service) GetCategory(code string) (*hal.Resource, error) {
	c, err := s.categories.FindOneByIdentifier(code)
	if err != nil {
		return nil, fmt.Errorf("category %w", err)
	}
	return s.categoryResource(c)
}

func (s *Service) categoryResource(c *types.Category) (*hal.Resource, error) {
	return s.resource(router.RouteCategoryGet, "code", c.Code, NormalizeCategory(c))
}

// CreateCategory builds a category from fields and stores it.
func (s *Service) CreateCategory(fields updater.Fields) (*hal.Resource, error) {
	c := &types.Category{}
	if err := s.categoryUpdater.Update(c, fields, updater.Options{ValidateFirst: true}); err != nil {
		return nil, err
	}
	if c.Code == "" {
		return nil, fmt.Errorf("creating category: %w", types.ErrInvalidCode)
	}
	if _, err := s.categories.FindOneByIdentifier(c.Code); err == nil {
		return nil, fmt.Errorf("category %q: %w", c.Code, types.ErrAlreadyExists)
	}
	if err := s.categories.Save(c); err != nil {
		return nil, fmt.Errorf("saving category %q: %w", c.Code, err)
	}
	s.logger.Info("created category", zap.String("code", c.Code), zap.String("parent", c.ParentCode()))
	return s.categoryResource(c)
}

// UpdateCategory applies fields to the category with the given code. Nothing
// is stored unless every field applies.
func (s *Service) UpdateCategory(code string, fields updater.Fields) (*hal.Resource, error) {
	c, err := s.categories.FindOneByIdentifier(code)
	if err != nil {
		return nil, fmt.Errorf("category %w", err)
	}
	if err := s.categoryUpdater.Update(c, fields, updater.Options{ValidateFirst: true}); err != nil {
		return nil, err
	}
	if err := s.categories.Save(c); err != nil {
		return nil, fmt.Errorf("saving category %q: %w", c.Code, err)
	}
	s.logger.Info("updated category", zap.String("code", c.Code), zap.Strings("fields", fields.Names()))
	return s.categoryResource(c)
}

// DeleteCategory removes the category with the given code and its subtree.
func (s *Service) DeleteCategory(code string) error {
	if err := s.categories.Delete(code); err != nil {
		return fmt.Errorf("deleting category %w", err)
	}
	s.logger.Info("deleted category", zap.String("code", code))
	return nil
}

// ListProductTypes returns one page of product types. The accepted filter is
// code.
func (s *Service) ListProductTypes(params map[string]string) (*hal.Resource, error) {
	return listPage(s, s.productTypes, params, NormalizeProductType, router.RouteProductTypeList, router.RouteProductTypeGet, "code")
}

// GetProductType returns the product type with the given code.
func (s *Service) GetProductType(code string) (*hal.Resource, error) {
	pt, err := s.manager.Find(code)
	if err != nil {
		return nil, err
	}
	return s.productTypeResource(pt)
}

func (s *Service) productTypeResource(pt *types.ProductType) (*hal.Resource, error) {
	return s.resource(router.RouteProductTypeGet, "code", pt.Code, NormalizeProductType(pt))
}

// CreateProductType stores a new product type. An empty title defaults to
// the code.
func (s *Service) CreateProductType(code, title string) (*hal.Resource, error) {
	pt, err := s.manager.Create(code, title)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Save(pt); err != nil {
		return nil, err
	}
	s.logger.Info("created product type", zap.String("code", pt.Code))
	return s.productTypeResource(pt)
}

// UpdateProductType applies fields to the product type with the given code.
func (s *Service) UpdateProductType(code string, fields updater.Fields) (*hal.Resource, error) {
	return s.modifyProductType(code, func(pt *types.ProductType) error {
		return s.productTypeUpdater.Update(pt, fields, updater.Options{ValidateFirst: true})
	})
}

// AddGroup appends a field group to a product type.
func (s *Service) AddGroup(typeCode, groupCode, title string) (*hal.Resource, error) {
	return s.modifyProductType(typeCode, func(pt *types.ProductType) error {
		if _, err := pt.AddGroup(groupCode, title); err != nil {
			return fmt.Errorf("adding group %q: %w", groupCode, err)
		}
		return nil
	})
}

// AddField appends a field to a group of a product type.
func (s *Service) AddField(typeCode, fieldCode, fieldType, groupCode, title string) (*hal.Resource, error) {
	return s.modifyProductType(typeCode, func(pt *types.ProductType) error {
		if _, err := pt.AddField(fieldCode, fieldType, groupCode, title); err != nil {
			return fmt.Errorf("adding field %q to group %q: %w", fieldCode, groupCode, err)
		}
		return nil
	})
}

// RemoveField removes a field from a product type.
func (s *Service) RemoveField(typeCode, fieldCode string) (*hal.Resource, error) {
	return s.modifyProductType(typeCode, func(pt *types.ProductType) error {
		if err := pt.RemoveField(fieldCode); err != nil {
			return fmt.Errorf("removing field %q: %w", fieldCode, err)
		}
		return nil
	})
}

// DeleteProductType removes the product type with the given code.
func (s *Service) DeleteProductType(code string) error {
	if err := s.manager.Delete(code); err != nil {
		return err
	}
	s.logger.Info("deleted product type", zap.String("code", code))
	return nil
}

func (s *Service) modifyProductType(code string, modify func(*types.ProductType) error) (*hal.Resource, error) {
	pt, err := s.manager.Find(code)
	if err != nil {
		return nil, err
	}
	if err := modify(pt); err != nil {
		return nil, err
	}
	if err := s.manager.Save(pt); err != nil {
		return nil, err
	}
	s.logger.Info("updated product type", zap.String("code", pt.Code))
	return s.productTypeResource(pt)
}

// ListAttributes returns one page of attributes. Accepted filters are code
// and type.
func (s *Service) ListAttributes(params map[string]string) (*hal.Resource, error) {
	return listPage(s, s.attributes, params, NormalizeAttribute, router.RouteAttributeList, router.RouteAttributeGet, "code")
}

// CreateAttribute stores a new attribute. Options are only accepted on
// select attributes.
func (s *Service) CreateAttribute(code, attrType string, options []string) (*hal.Resource, error) {
	if code == "" {
		return nil, fmt.Errorf("creating attribute: %w", types.ErrInvalidCode)
	}
	if !types.IsValidAttributeType(attrType) {
		return nil, fmt.Errorf("attribute type %q: %w", attrType, types.ErrInvalidAttributeType)
	}
	if _, err := s.attributes.FindOneByIdentifier(code); err == nil {
		return nil, fmt.Errorf("attribute %q: %w", code, types.ErrAlreadyExists)
	}
	a := &types.Attribute{Code: code, Type: attrType}
	for _, o := range options {
		if err := a.AddOption(o); err != nil {
			return nil, fmt.Errorf("attribute option %q: %w", o, err)
		}
	}
	if err := s.attributes.Save(a); err != nil {
		return nil, fmt.Errorf("saving attribute %q: %w", code, err)
	}
	s.logger.Info("created attribute", zap.String("code", code), zap.String("type", attrType))
	return s.resource(router.RouteAttributeGet, "code", a.Code, NormalizeAttribute(a))
}

// ListProducts returns one page of products. Accepted filters are
// identifier and product_type.
func (s *Service) ListProducts(params map[string]string) (*hal.Resource, error) {
	return listPage(s, s.products, params, NormalizeProduct, router.RouteProductList, router.RouteProductGet, types.DocIdentifier)
}

// CreateProduct stores a new, empty product of the given type.
func (s *Service) CreateProduct(typeCode, identifier string) (*hal.Resource, error) {
	if identifier == "" {
		return nil, fmt.Errorf("creating product: %w", types.ErrInvalidCode)
	}
	if _, err := s.products.FindOneByIdentifier(identifier); err == nil {
		return nil, fmt.Errorf("product %q: %w", identifier, types.ErrAlreadyExists)
	}
	p, err := s.manager.NewProduct(typeCode, identifier)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(p); err != nil {
		return nil, fmt.Errorf("saving product %q: %w", identifier, err)
	}
	s.logger.Info("created product", zap.String("identifier", identifier), zap.String("product_type", typeCode))
	return s.resource(router.RouteProductGet, types.DocIdentifier, p.Identifier, NormalizeProduct(p))
}

// ImportProducts reads one product document per line from r and stores each
// one, replacing the document of an existing product with the same
// identifier. Blank lines are ignored. It stops at the first invalid line and
// returns the number of products stored before it.
func (s *Service) ImportProducts(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLine)

	imported := 0
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		identifier, _ := doc[types.DocIdentifier].(string)
		if identifier == "" {
			return imported, fmt.Errorf("line %d: missing identifier: %w", line, types.ErrInvalidData)
		}

		p, err := s.products.FindOneByIdentifier(identifier)
		switch {
		case errors.Is(err, types.ErrNotFound):
			p = &types.Product{Identifier: identifier}
		case err != nil:
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		p.Document = doc
		if err := s.products.Save(p); err != nil {
			return imported, fmt.Errorf("line %d: saving product %q: %w", line, identifier, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("reading products: %w", err)
	}
	s.logger.Info("imported products", zap.Int("count", imported))
	return imported, nil
}

func decodeDocument(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding product: %w", types.ErrInvalidData, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decoding product: %w", updater.ErrNotAnObject)
	}
	return doc, nil
}
