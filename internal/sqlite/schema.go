package sqlite

// Schema DDL. Columns holding lists or objects store JSON text.
const (
	createCategories = `CREATE TABLE categories (
    category_id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    parent_id TEXT,
    locales TEXT NOT NULL DEFAULT '[]',
    labels TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createProductTypes = `CREATE TABLE product_types (
    type_id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    groups TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createAttributes = `CREATE TABLE attributes (
    attribute_id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    options TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL
);`

	createProducts = `CREATE TABLE products (
    product_id TEXT PRIMARY KEY,
    identifier TEXT NOT NULL UNIQUE,
    product_type TEXT,
    document TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxCategoriesParent = `CREATE INDEX idx_categories_parent ON categories(parent_id);`
	idxProductsType     = `CREATE INDEX idx_products_type ON products(product_type);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createCategories,
	createProductTypes,
	createAttributes,
	createProducts,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxCategoriesParent,
	idxProductsType,
}

// jsonColumns lists, per table, the columns whose TEXT holds JSON, with the
// value used when a JSONL record omits them. They are written to JSONL as
// nested values rather than strings.
var jsonColumns = map[string]map[string]string{
	"categories":    {"locales": "[]", "labels": "{}"},
	"product_types": {"groups": "[]"},
	"attributes":    {"options": "[]"},
	"products":      {"document": "{}"},
}
