package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Store is an open handle on the sales store.
// Thread-Safety: NOT safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string
	logger  retailsql.Logger
	release func() error
}

// ColumnInfo is a column name and type as reported by the store catalog.
type ColumnInfo struct {
	Name string
	Type string
}

// RowSource feeds rows to ReplaceTable without materialising them all at once.
type RowSource interface {
	NumRows() int
	// Row fills dst (one slot per column) with the values of row i.
	Row(i int, dst []any)
}

// Close releases the connection and any driver resources behind it.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.release != nil {
		if rerr := s.release(); err == nil {
			err = rerr
		}
	}
	return err
}

// Dialect returns the SQL dialect of the store.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Table returns the configured sales table name.
func (s *Store) Table() string {
	return s.table
}

// Query runs a fully rendered statement and returns its result as a table named name.
func (s *Store) Query(ctx context.Context, name, query string, args ...any) (*frame.Table, error) {
	s.logger.Verbose("Running %s", name)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, retailsql.ErrQueryFailed, err)
	}
	t, err := frame.FromRows(name, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, retailsql.ErrQueryFailed, err)
	}
	return t, nil
}

// QueryTemplate renders a query template (see Render) and runs it.
func (s *Store) QueryTemplate(ctx context.Context, name, tmpl string) (*frame.Table, error) {
	query, err := s.Render(name, tmpl)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, name, query)
}

// ReplaceTable drops table if it exists, creates it with columns and inserts every
// row of src in a single transaction. It returns the number of rows inserted.
func (s *Store) ReplaceTable(ctx context.Context, table string, columns []ColumnDef, src RowSource) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("table %s: no columns to create: %w", table, retailsql.ErrQueryFailed)
	}
	quoted := s.dialect.QuoteIdent(table)

	defs := make([]string, len(columns))
	names := make([]string, len(columns))
	binds := make([]string, len(columns))
	for i, c := range columns {
		names[i] = s.dialect.QuoteIdent(c.Name)
		defs[i] = names[i] + " " + s.dialect.ColumnType(c.Kind)
		binds[i] = s.dialect.Placeholder(i + 1)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin load of %s: %w: %w", table, retailsql.ErrQueryFailed, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
		return 0, fmt.Errorf("dropping %s: %w: %w", table, retailsql.ErrQueryFailed, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoted, strings.Join(defs, ", "))
	s.logger.Verbose("%s", create)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("creating %s: %w: %w", table, retailsql.ErrQueryFailed, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoted, strings.Join(names, ", "), strings.Join(binds, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("preparing insert into %s: %w: %w", table, retailsql.ErrQueryFailed, err)
	}
	defer stmt.Close()

	values := make([]any, len(columns))
	var inserted int64
	for i := 0; i < src.NumRows(); i++ {
		src.Row(i, values)
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return inserted, fmt.Errorf("inserting row %d into %s: %w: %w", i+1, table, retailsql.ErrQueryFailed, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load of %s: %w: %w", table, retailsql.ErrQueryFailed, err)
	}
	return inserted, nil
}

// Columns lists the columns of table with their catalog types.
func (s *Store) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.ColumnsQuery(), table)
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w: %w", table, retailsql.ErrQueryFailed, err)
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("listing columns of %s: %w", table, err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	query := "SELECT COUNT(*) FROM " + s.dialect.QuoteIdent(table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w: %w", table, retailsql.ErrQueryFailed, err)
	}
	return n, nil
}

// Sample returns the first n rows of table in storage order.
func (s *Store) Sample(ctx context.Context, table string, n int) (*frame.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", s.dialect.QuoteIdent(table), n)
	return s.Query(ctx, "sample", query)
}
