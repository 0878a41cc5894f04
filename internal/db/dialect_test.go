package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

func TestDialectFor(t *testing.T) {
	d, err := DialectFor(retailsql.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.SQLDriver())

	d, err = DialectFor(retailsql.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "pgx", d.SQLDriver())

	_, err = DialectFor("mysql")
	assert.True(t, errors.Is(err, retailsql.ErrInvalidConfig))
}

func TestDialect_ColumnTypes(t *testing.T) {
	tests := []struct {
		kind     Kind
		sqlite   string
		postgres string
	}{
		{KindInt, "INTEGER", "BIGINT"},
		{KindFloat, "REAL", "DOUBLE PRECISION"},
		{KindBool, "INTEGER", "BOOLEAN"},
		{KindString, "TEXT", "TEXT"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.sqlite, sqliteDialect{}.ColumnType(tt.kind))
			assert.Equal(t, tt.postgres, postgresDialect{}.ColumnType(tt.kind))
		})
	}
}

func TestDialect_QuoteIdent(t *testing.T) {
	assert.Equal(t, `"retail_sales"`, sqliteDialect{}.QuoteIdent("retail_sales"))
	assert.Equal(t, `"we""ird"`, sqliteDialect{}.QuoteIdent(`we"ird`))
	assert.Equal(t, `"retail_sales"`, postgresDialect{}.QuoteIdent("retail_sales"))
}

func TestDialect_Placeholders(t *testing.T) {
	assert.Equal(t, "?", sqliteDialect{}.Placeholder(3))
	assert.Equal(t, "$3", postgresDialect{}.Placeholder(3))
}

func TestRenderQuery(t *testing.T) {
	const tmpl = `SELECT {{month "date"}} AS month, {{round "AVG(total_amount)" 2}} FROM {{.Table}}`

	got, err := RenderQuery(sqliteDialect{}, "sales", "monthly", tmpl)
	require.NoError(t, err)
	assert.Equal(t, `SELECT strftime('%Y-%m', date) AS month, ROUND(AVG(total_amount), 2) FROM "sales"`, got)

	got, err = RenderQuery(postgresDialect{}, "sales", "monthly", tmpl)
	require.NoError(t, err)
	assert.Equal(t, `SELECT to_char(CAST(date AS DATE), 'YYYY-MM') AS month, ROUND(CAST(AVG(total_amount) AS NUMERIC), 2) FROM "sales"`, got)
}

func TestRenderQuery_BadTemplate(t *testing.T) {
	_, err := RenderQuery(sqliteDialect{}, "sales", "broken", `SELECT {{.Missing}}`)
	assert.True(t, errors.Is(err, retailsql.ErrQueryFailed))

	_, err = RenderQuery(sqliteDialect{}, "sales", "broken", `SELECT {{month}`)
	assert.True(t, errors.Is(err, retailsql.ErrQueryFailed))
}
