package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/internal/router"
	"github.com/mesh-intelligence/catalog/pkg/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/types"
	"github.com/mesh-intelligence/catalog/pkg/updater"
)

const testBaseURL = "http://catalog.test"

// setupCatalog returns a seeded catalog attached to a fresh temp directory.
func setupCatalog(t *testing.T) types.Catalog {
	t.Helper()
	c := sqlite.NewBackend(nil)
	require.NoError(t, c.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { c.Detach() })
	return c
}

func setupService(t *testing.T, cfg Config) *Service {
	t.Helper()
	urls, err := router.New(testBaseURL, router.DefaultRoutes)
	require.NoError(t, err)
	s, err := NewService(setupCatalog(t), urls, cfg, nil)
	require.NoError(t, err)
	return s
}

func fields(m map[string]any) updater.Fields {
	return updater.FieldsFromMap(m)
}
