package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sports-portal/models"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

func asPQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pqErr, ok := asPQError(err)
	return ok && pqErr.Code == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pqErr, ok := asPQError(err)
	return ok && pqErr.Code == pqForeignKeyViolation
}

// whereClause accumulates numbered-placeholder conditions for list queries.
type whereClause struct {
	conds []string
	args  []interface{}
}

func (w *whereClause) next(arg interface{}) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

// eqFold adds a case-insensitive equality condition when value is non-empty.
func (w *whereClause) eqFold(column, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	w.conds = append(w.conds, fmt.Sprintf("LOWER(%s) = LOWER(%s)", column, w.next(value)))
}

func (w *whereClause) eqInt(column string, value *int) {
	if value == nil {
		return
	}
	w.conds = append(w.conds, fmt.Sprintf("%s = %s", column, w.next(*value)))
}

// search adds an ILIKE over any of columns.
func (w *whereClause) search(value string, columns ...string) {
	value = strings.TrimSpace(value)
	if value == "" || len(columns) == 0 {
		return
	}
	placeholder := w.next("%" + escapeLike(value) + "%")
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", c, placeholder)
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET for the filter and returns the final args.
func (w *whereClause) page(query string, filter models.ListFilter) (string, []interface{}) {
	args := append([]interface{}{}, w.args...)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if offset := filter.Offset(); offset > 0 {
			args = append(args, offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}
	return query, args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func countRows(ctx context.Context, exec SQLExecutor, table string, w *whereClause) (int, error) {
	var total int
	query := "SELECT COUNT(*) FROM " + table + w.String()
	if err := exec.QueryRowContext(ctx, query, w.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return total, nil
}

func countByColumn(ctx context.Context, exec SQLExecutor, table, column string) (map[string]int, error) {
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", column, table, column)
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s by %s: %w", table, column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func formatUniqueID(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

func nextUniqueID(ctx context.Context, exec SQLExecutor, sequence, prefix string) (string, error) {
	var seq int64
	if err := exec.QueryRowContext(ctx, "SELECT nextval('"+sequence+"')").Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to draw from %s: %w", sequence, err)
	}
	return formatUniqueID(prefix, seq), nil
}
