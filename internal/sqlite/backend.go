// Package sqlite implements the SQLite storage backend for the catalog.
// JSONL files in the data directory are the source of truth; SQLite is
// rebuilt from them on every Attach and serves queries. Every write updates
// SQLite and then rewrites the table's JSONL file atomically.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// dbFile is the SQLite file created in the data directory. It is rebuilt on
// every Attach.
const dbFile = "catalog.db"

var _ types.Catalog = (*Backend)(nil)

// Backend implements types.Catalog with SQLite as the query engine and JSONL
// files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table

	logger    *zap.Logger
	seedCodes []string
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for load and persistence events.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSeedCategories creates root categories with the given codes when the
// categories file is created on first Attach.
func WithSeedCategories(codes ...string) Option {
	return func(b *Backend) {
		b.seedCodes = append(b.seedCodes, codes...)
	}
}

// NewBackend creates a detached SQLite backend. Call Attach to use it.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		tables: make(map[string]types.Table),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetTable returns the table accessor for name.
// Returns ErrCatalogDetached if the backend is not attached and
// ErrTableNotFound for an unknown name.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

// Attach creates DataDir if needed, builds a fresh SQLite schema, creates
// missing JSONL files, and loads every JSONL file into SQLite.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(config.DataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	// One connection keeps the schema and the transactions on the same file
	// handle.
	db.SetMaxOpenConns(1)

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	created, err := initJSONLFiles(config.DataDir)
	if err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, config.DataDir, b.logger); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.tables[types.TableCategories] = &categoriesTable{backend: b}
	b.tables[types.TableProductTypes] = &productTypesTable{backend: b}
	b.tables[types.TableAttributes] = &attributesTable{backend: b}
	b.tables[types.TableProducts] = &productsTable{backend: b}

	if created[types.TableCategories] && len(b.seedCodes) > 0 {
		if err := b.seedCategories(); err != nil {
			b.detachLocked()
			return fmt.Errorf("seeding categories: %w", err)
		}
	}

	b.logger.Debug("catalog attached", zap.String("data_dir", config.DataDir))
	return nil
}

// Detach closes the SQLite connection. After Detach every operation returns
// ErrCatalogDetached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detachLocked()
}

func (b *Backend) detachLocked() error {
	if !b.attached {
		return nil
	}
	var err error
	if b.db != nil {
		err = b.db.Close()
		b.db = nil
	}
	b.attached = false
	b.tables = make(map[string]types.Table)
	return err
}

// DataDir returns the data directory of the attached backend.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// rlock acquires the read lock if the backend is attached.
func (b *Backend) rlock() error {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return types.ErrCatalogDetached
	}
	return nil
}

// lock acquires the write lock if the backend is attached.
func (b *Backend) lock() error {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return types.ErrCatalogDetached
	}
	return nil
}

// persist rewrites the JSONL file of table. The caller holds the write lock.
func (b *Backend) persist(table string) error {
	if err := persistTable(b.db, b.config.DataDir, table); err != nil {
		return fmt.Errorf("persisting %s: %w", jsonlFile(table), err)
	}
	return nil
}

// initJSONLFiles creates an empty JSONL file for every table that has none
// and reports which were created.
func initJSONLFiles(dataDir string) (map[string]bool, error) {
	created := map[string]bool{}
	for _, name := range types.StandardTableNames {
		path := filepath.Join(dataDir, jsonlFile(name))
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		created[name] = true
	}
	return created, nil
}

// newID generates a UUID v7 entity ID.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
