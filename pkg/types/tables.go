package types

// Standard table names for Catalog.GetTable.
const (
	TableCategories   = "categories"
	TableProductTypes = "product_types"
	TableAttributes   = "attributes"
	TableProducts     = "products"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableCategories,
	TableProductTypes,
	TableAttributes,
	TableProducts,
}
