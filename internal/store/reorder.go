package store

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// reorderScope constrains which rows a reorder may touch. The predicate is
// ANDed with the id match, so rows outside the caller's scope match zero
// rows and are skipped without error.
type reorderScope struct {
	table string
	where string
	args  []any
}

// reorderRows assigns each id in ids a position equal to its index in the
// original sequence. Updates are independent conditional writes issued one
// at a time; SQLite permits a single writer, so dispatching them in parallel
// only makes them queue on the write lock. There is deliberately no wrapping
// transaction, so a storage failure mid-batch leaves earlier writes in place
// and the call is retryable with the same sequence. A row that fails the
// scope predicate is a per-element no-op, logged at debug only.
func reorderRows(db *sql.DB, sc reorderScope, ids []int64) error {
	query := `UPDATE ` + sc.table + ` SET position = ? WHERE id = ? AND ` + sc.where

	for i, id := range ids {
		args := make([]any, 0, len(sc.args)+2)
		args = append(args, i, id)
		args = append(args, sc.args...)

		result, err := db.Exec(query, args...)
		if err != nil {
			return fmt.Errorf("reorder %s id %d: %w", sc.table, id, err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			slog.Debug("reorder skipped out-of-scope id", "table", sc.table, "id", id)
		}
	}

	return nil
}

// nextPosition returns 1 + max(position) over the scope, so the first member
// of an empty scope gets 0 and new members append to the end.
func nextPosition(db *sql.DB, table, where string, args ...any) (int, error) {
	var maxPos int
	query := `SELECT COALESCE(MAX(position), -1) FROM ` + table + ` WHERE ` + where
	if err := db.QueryRow(query, args...).Scan(&maxPos); err != nil {
		return 0, fmt.Errorf("query max position: %w", err)
	}
	return maxPos + 1, nil
}
