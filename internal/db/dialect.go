package db

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Kind is the inferred storage class of a loaded column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// ColumnDef describes one column of the table created by the loader.
type ColumnDef struct {
	Name string
	Kind Kind
}

// Dialect isolates the SQL that differs between drivers.
type Dialect interface {
	// Name is the driver name used in configuration.
	Name() string
	// SQLDriver is the database/sql driver name.
	SQLDriver() string
	// ColumnType maps an inferred kind to a column type.
	ColumnType(k Kind) string
	// QuoteIdent quotes a table or column name.
	QuoteIdent(name string) string
	// Placeholder returns the n-th (1-based) bind parameter.
	Placeholder(n int) string
	// MonthBucket renders a YYYY-MM expression over a date column.
	MonthBucket(col string) string
	// MonthNumber renders a two-digit month-of-year expression.
	MonthNumber(col string) string
	// Round renders ROUND(expr, places) for floating point input.
	Round(expr string, places int) string
	// ColumnsQuery lists name and type of a table's columns; bind 1 is the table.
	ColumnsQuery() string
}

// DialectFor returns the dialect for a configured driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case retailsql.DriverSQLite:
		return sqliteDialect{}, nil
	case retailsql.DriverPostgres:
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported driver %q: %w", driver, retailsql.ErrInvalidConfig)
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string      { return retailsql.DriverSQLite }
func (sqliteDialect) SQLDriver() string { return "sqlite" }

// ColumnType maps kinds onto SQLite's storage affinities; booleans are stored as 0/1.
func (sqliteDialect) ColumnType(k Kind) string {
	switch k {
	case KindInt, KindBool:
		return "INTEGER"
	case KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (sqliteDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) MonthBucket(col string) string {
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", col)
}

func (sqliteDialect) MonthNumber(col string) string {
	return fmt.Sprintf("strftime('%%m', %s)", col)
}

func (sqliteDialect) Round(expr string, places int) string {
	return fmt.Sprintf("ROUND(%s, %d)", expr, places)
}

func (sqliteDialect) ColumnsQuery() string {
	return `SELECT name, type FROM pragma_table_info(?) ORDER BY cid`
}

type postgresDialect struct{}

func (postgresDialect) Name() string      { return retailsql.DriverPostgres }
func (postgresDialect) SQLDriver() string { return "pgx" }

func (postgresDialect) ColumnType(k Kind) string {
	switch k {
	case KindInt:
		return "BIGINT"
	case KindFloat:
		return "DOUBLE PRECISION"
	case KindBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

func (postgresDialect) QuoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

// Dates are stored as ISO text, so they are cast before formatting.
func (postgresDialect) MonthBucket(col string) string {
	return fmt.Sprintf("to_char(CAST(%s AS DATE), 'YYYY-MM')", col)
}

func (postgresDialect) MonthNumber(col string) string {
	return fmt.Sprintf("to_char(CAST(%s AS DATE), 'MM')", col)
}

// ROUND(double precision, int) does not exist in PostgreSQL.
func (postgresDialect) Round(expr string, places int) string {
	return fmt.Sprintf("ROUND(CAST(%s AS NUMERIC), %d)", expr, places)
}

func (postgresDialect) ColumnsQuery() string {
	return `SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`
}
