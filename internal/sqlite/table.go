package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Filter keys understood by every table.
const (
	filterLimit  = "limit"
	filterOffset = "offset"
)

// conditions builds a WHERE clause from the string-valued filter keys listed
// in columns (filter key -> SQL expression with one placeholder). Keys other
// than those, limit and offset are rejected.
func conditions(filter types.Filter, columns map[string]string) (string, []any, error) {
	var conds []string
	var args []any
	for _, key := range slices.Sorted(maps.Keys(filter)) {
		if key == filterLimit || key == filterOffset {
			continue
		}
		expr, ok := columns[key]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown key %q", types.ErrInvalidFilter, key)
		}
		s, ok := filter[key].(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: %q must be a string", types.ErrInvalidFilter, key)
		}
		conds = append(conds, expr)
		args = append(args, s)
	}
	if len(conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// page returns the LIMIT/OFFSET clause for filter.
func page(filter types.Filter) (string, error) {
	limit, err := intFilter(filter, filterLimit)
	if err != nil {
		return "", err
	}
	offset, err := intFilter(filter, filterOffset)
	if err != nil {
		return "", err
	}

	var clause string
	switch {
	case limit > 0:
		clause = fmt.Sprintf(" LIMIT %d", limit)
	case offset > 0:
		clause = " LIMIT -1"
	}
	if offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", offset)
	}
	return clause, nil
}

func intFilter(filter types.Filter, key string) (int, error) {
	v, ok := filter[key]
	if !ok {
		return 0, nil
	}
	n, ok := v.(int)
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: %q must be a non-negative int", types.ErrInvalidFilter, key)
	}
	return n, nil
}

// count runs SELECT COUNT(*) over the from clause with the filter's
// conditions. table names the entity in errors.
func count(b *Backend, table, from string, filter types.Filter, columns map[string]string) (int, error) {
	where, args, err := conditions(filter, columns)
	if err != nil {
		return 0, err
	}
	var n int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM "+from+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// codeTaken reports whether another row of table already uses code.
func codeTaken(b *Backend, table, idColumn, codeColumn, code, id string) (bool, error) {
	var other string
	err := b.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? AND %s != ?", idColumn, table, codeColumn, idColumn),
		code, id,
	).Scan(&other)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s uniqueness: %w", codeColumn, err)
	}
	return true, nil
}

// deleteRow removes the row with the given id and rewrites the table's JSONL.
func deleteRow(b *Backend, table, idColumn, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := b.lock(); err != nil {
		return err
	}
	defer b.mu.Unlock()

	res, err := b.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, idColumn), id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	return b.persist(table)
}
