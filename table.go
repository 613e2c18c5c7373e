package outreach

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = sql.ErrNoRows

type rowScanner interface {
	Scan(dest ...any) error
}

// Eq is an equality filter on one column.
type Eq struct {
	Column string
	Value  any
}

// Order sorts a select by one column.
type Order struct {
	Column string
	Desc   bool
}

func (o Order) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// Table describes how one row type maps onto a table. Columns lists every
// column with "id" first; Values must return values in the same order and
// Scan must read them in that order.
type Table[R any] struct {
	Name    string
	Columns []string
	Order   Order
	Scan    func(rowScanner) (R, error)
	Values  func(R) []any
	ID      func(R) string
}

func (t Table[R]) columnList() string {
	return strings.Join(t.Columns, ", ")
}

func where(filters []Eq) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	clauses := make([]string, len(filters))
	args := make([]any, len(filters))
	for i, f := range filters {
		clauses[i] = f.Column + " = ?"
		args[i] = f.Value
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Select returns rows matching all filters, sorted by order.
func (t Table[R]) Select(ctx context.Context, db *DB, order Order, filters ...Eq) ([]R, error) {
	cond, args := where(filters)
	q := "SELECT " + t.columnList() + " FROM " + t.Name + cond + " ORDER BY " + order.String()
	rows, err := db.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.Name, err)
	}
	defer rows.Close()

	var out []R
	for rows.Next() {
		r, err := t.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.Name, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns the first row matching all filters, or ErrNotFound.
func (t Table[R]) Get(ctx context.Context, db *DB, filters ...Eq) (R, error) {
	cond, args := where(filters)
	q := "SELECT " + t.columnList() + " FROM " + t.Name + cond + " LIMIT 1"
	return t.Scan(db.queryRow(ctx, q, args...))
}

func (t Table[R]) placeholders() string {
	return strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
}

// Insert adds one or more rows. A batch is written in a single transaction.
func (t Table[R]) Insert(ctx context.Context, db *DB, rows ...R) error {
	q := db.rebind("INSERT INTO " + t.Name + " (" + t.columnList() + ") VALUES (" + t.placeholders() + ")")
	if len(rows) == 1 {
		_, err := db.db.ExecContext(ctx, q, t.Values(rows[0])...)
		return err
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, q, t.Values(r)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Update overwrites every non-id column of the rows matching by.
func (t Table[R]) Update(ctx context.Context, db *DB, row R, by Eq) error {
	sets := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns[1:] {
		sets = append(sets, c+" = ?")
	}
	args := append(t.Values(row)[1:], by.Value)
	res, err := db.exec(ctx, "UPDATE "+t.Name+" SET "+strings.Join(sets, ", ")+" WHERE "+by.Column+" = ?", args...)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Upsert inserts row, or overwrites the existing row with the same id.
func (t Table[R]) Upsert(ctx context.Context, db *DB, row R) error {
	sets := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns[1:] {
		sets = append(sets, c+" = excluded."+c)
	}
	q := "INSERT INTO " + t.Name + " (" + t.columnList() + ") VALUES (" + t.placeholders() + ")" +
		" ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
	_, err := db.exec(ctx, q, t.Values(row)...)
	return err
}

// Delete removes the row with the given id.
func (t Table[R]) Delete(ctx context.Context, db *DB, id string) error {
	res, err := db.exec(ctx, "DELETE FROM "+t.Name+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Set writes a single column of the row with the given id.
func (t Table[R]) Set(ctx context.Context, db *DB, id, column string, value any) error {
	res, err := db.exec(ctx, "UPDATE "+t.Name+" SET "+column+" = ? WHERE id = ?", value, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Count returns the number of rows matching all filters.
func (t Table[R]) Count(ctx context.Context, db *DB, filters ...Eq) (int, error) {
	cond, args := where(filters)
	var n int
	err := db.queryRow(ctx, "SELECT COUNT(*) FROM "+t.Name+cond, args...).Scan(&n)
	return n, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Column encoders shared by the table descriptors.

// storedTime has fixed-width fractional seconds so text order matches time
// order in both dialects.
const storedTime = "2006-01-02T15:04:05.000000Z07:00"

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedTime)
}

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeList(vals []string) string {
	if len(vals) == 0 {
		return "[]"
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
