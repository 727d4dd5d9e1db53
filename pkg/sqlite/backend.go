// Package sqlite exposes the SQLite catalog backend while keeping its
// implementation internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/catalog/internal/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// DefaultRootCategory is the root category created in a new data directory.
const DefaultRootCategory = "master"

// NewBackend creates a detached SQLite backend that logs to logger (nil
// disables logging) and seeds DefaultRootCategory in a new data directory.
//
// Example:
//
//	backend := sqlite.NewBackend(logger)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: dataDir,
//	})
//	defer backend.Detach()
func NewBackend(logger *zap.Logger) types.Catalog {
	return sqlite.NewBackend(
		sqlite.WithLogger(logger),
		sqlite.WithSeedCategories(DefaultRootCategory),
	)
}
