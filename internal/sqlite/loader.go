package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// jsonlTableMapping lists the tables loaded from JSONL and the columns read
// from each record. Fields not listed are ignored.
var jsonlTableMapping = []struct {
	table   string
	columns []string
}{
	{"categories", []string{"category_id", "code", "parent_id", "locales", "labels", "created_at", "updated_at"}},
	{"product_types", []string{"type_id", "code", "title", "groups", "created_at", "updated_at"}},
	{"attributes", []string{"attribute_id", "code", "type", "options", "created_at"}},
	{"products", []string{"product_id", "identifier", "product_type", "document", "created_at", "updated_at"}},
}

// loadAllJSONL reads every table's JSONL file from dataDir into SQLite inside
// one transaction. Malformed lines and records violating constraints are
// skipped and logged.
func loadAllJSONL(db *sql.DB, dataDir string, logger *zap.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		file := jsonlFile(mapping.table)
		records, err := readJSONL(filepath.Join(dataDir, file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		if len(records) == 0 {
			continue
		}

		loaded, err := insertRecords(tx, mapping.table, mapping.columns, records)
		if err != nil {
			return fmt.Errorf("loading %s into %s: %w", file, mapping.table, err)
		}
		if skipped := len(records) - loaded; skipped > 0 {
			logger.Warn("skipped JSONL records",
				zap.String("table", mapping.table),
				zap.Int("skipped", skipped))
		}
		logger.Debug("loaded table", zap.String("table", mapping.table), zap.Int("records", loaded))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts JSONL records into table and returns how many were
// inserted. Nested objects and arrays are stored as JSON text.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	placeholders := strings.Repeat("?, ", len(columns)-1) + "?"
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders,
	))
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	loaded := 0
	for _, rec := range records {
		obj, err := decodeObject(rec)
		if err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			val, present := obj[col]
			if def, isJSON := jsonColumns[table][col]; isJSON && (!present || val == nil) {
				args[i] = def
				continue
			}
			switch v := val.(type) {
			case map[string]any, []any:
				// Values decoded from JSON always re-encode.
				b, _ := json.Marshal(v)
				args[i] = string(b)
			case json.Number:
				args[i] = v.String()
			default:
				args[i] = v
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		loaded++
	}
	return loaded, nil
}
