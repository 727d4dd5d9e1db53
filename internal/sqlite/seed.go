package sqlite

import (
	"fmt"
	"time"
)

// seedCategories inserts the configured root categories. It runs once, when
// the categories file is first created. The caller holds the write lock.
func (b *Backend) seedCategories() error {
	now := formatTime(time.Now())
	for _, code := range b.seedCodes {
		id, err := newID()
		if err != nil {
			return err
		}
		if _, err := b.db.Exec(
			"INSERT OR IGNORE INTO categories (category_id, code, created_at, updated_at) VALUES (?, ?, ?, ?)",
			id, code, now, now,
		); err != nil {
			return fmt.Errorf("inserting category %q: %w", code, err)
		}
	}
	return b.persist("categories")
}
