// Package types defines the Catalog and Table interfaces, the catalog entity
// types (categories, product types, attributes, products), and the standard
// error values shared by backends and services.
package types
