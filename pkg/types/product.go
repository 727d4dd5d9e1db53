package types

import "time"

// Keys of a product document. Documents are denormalized: they embed codes
// of the entities they refer to and a normalized copy of some of them.
const (
	DocIdentifier     = "identifier"
	DocProductType    = "product_type"
	DocCategories     = "categories"
	DocValues         = "values"
	DocNormalized     = "normalized"
	DocCompletenesses = "completenesses"
)

// Keys of a single entry of the DocValues list.
const (
	ValueAttribute = "attribute"
	ValueOption    = "option"
	ValueOptions   = "options"
	ValueData      = "data"
)

// Product is a stored product document.
type Product struct {
	ProductID  string         // UUID v7, generated on creation.
	Identifier string         // Unique SKU-like identifier.
	Document   map[string]any // Denormalized document body.
	CreatedAt  time.Time      // Timestamp of creation.
	UpdatedAt  time.Time      // Timestamp of last modification.
}

// ProductTypeCode returns the product type code referenced by the document,
// or "" when the document has none.
func (p *Product) ProductTypeCode() string {
	code, _ := p.Document[DocProductType].(string)
	return code
}
