package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestNewBackendSeedsRootCategory(t *testing.T) {
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	tbl, err := b.GetTable(types.TableCategories)
	require.NoError(t, err)
	got, err := tbl.(types.CodeLookup).GetByCode(DefaultRootCategory)
	require.NoError(t, err)
	assert.True(t, got.(*types.Category).IsRoot())
}
