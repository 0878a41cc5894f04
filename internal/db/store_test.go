package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/retailsql/internal/logging"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

type sliceSource [][]any

func (s sliceSource) NumRows() int { return len(s) }

func (s sliceSource) Row(i int, dst []any) { copy(dst, s[i]) }

var salesColumns = []ColumnDef{
	{Name: "transaction_id", Kind: KindInt},
	{Name: "gender", Kind: KindString},
	{Name: "total_amount", Kind: KindFloat},
}

func sqliteConfig(t *testing.T) retailsql.StoreConfig {
	t.Helper()
	return retailsql.StoreConfig{
		Driver: retailsql.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "nested", "sales.db"),
		Table:  "retail_sales",
	}
}

func TestOpen_MissingSQLiteFile(t *testing.T) {
	_, err := Open(context.Background(), sqliteConfig(t), logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, retailsql.ErrStoreNotFound))
	assert.Equal(t, retailsql.ExitInputMissing, retailsql.ExitCodeForError(err))
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := retailsql.StoreConfig{Driver: retailsql.DriverPostgres, Table: "t"}
	_, err := Open(context.Background(), cfg, logging.NewNullLogger())
	assert.True(t, errors.Is(err, retailsql.ErrInvalidConfig))
}

func TestStore_ReplaceTableAndVerify(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	store, err := Create(ctx, cfg, logging.NewNullLogger())
	require.NoError(t, err)
	defer store.Close()

	rows := sliceSource{
		{int64(1), "Male", 150.0},
		{int64(2), "Female", nil},
		{int64(3), "Female", 30.5},
		{int64(4), "Male", 500.0},
	}
	n, err := store.ReplaceTable(ctx, cfg.Table, salesColumns, rows)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	cols, err := store.Columns(ctx, cfg.Table)
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{
		{Name: "transaction_id", Type: "INTEGER"},
		{Name: "gender", Type: "TEXT"},
		{Name: "total_amount", Type: "REAL"},
	}, cols)

	count, err := store.Count(ctx, cfg.Table)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	sample, err := store.Sample(ctx, cfg.Table, 3)
	require.NoError(t, err)
	require.Equal(t, 3, sample.Len())
	assert.Equal(t, []any{int64(1), "Male", 150.0}, sample.Rows[0])
	assert.Nil(t, sample.Rows[1][2])
}

func TestStore_ReplaceTableIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	store, err := Create(ctx, cfg, logging.NewNullLogger())
	require.NoError(t, err)
	defer store.Close()

	rows := sliceSource{{int64(1), "Male", 10.0}, {int64(2), "Female", 20.0}}
	for i := 0; i < 2; i++ {
		_, err := store.ReplaceTable(ctx, cfg.Table, salesColumns, rows)
		require.NoError(t, err)
	}

	count, err := store.Count(ctx, cfg.Table)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCreate_RemovesExistingFile(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Path), 0o755))
	require.NoError(t, os.WriteFile(cfg.Path, []byte("not a database"), 0o644))

	store, err := Create(ctx, cfg, logging.NewNullLogger())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.ReplaceTable(ctx, cfg.Table, salesColumns, sliceSource{{int64(1), "Male", 1.0}})
	require.NoError(t, err)
}

func TestStore_QueryTemplate(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	store, err := Create(ctx, cfg, logging.NewNullLogger())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.ReplaceTable(ctx, cfg.Table, salesColumns, sliceSource{
		{int64(1), "Male", 10.0},
		{int64(2), "Female", 20.0},
		{int64(3), "Female", 25.0},
	})
	require.NoError(t, err)

	got, err := store.QueryTemplate(ctx, "by_gender", `
		SELECT gender, COUNT(*) AS n, SUM(total_amount) AS revenue
		FROM {{.Table}} GROUP BY gender ORDER BY gender`)
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "n", "revenue"}, got.Columns)
	assert.Equal(t, [][]any{
		{"Female", int64(2), 45.0},
		{"Male", int64(1), 10.0},
	}, got.Rows)
}

func TestStore_QueryFailure(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	store, err := Create(ctx, cfg, logging.NewNullLogger())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Query(ctx, "broken", "SELECT * FROM no_such_table")
	require.Error(t, err)
	assert.True(t, errors.Is(err, retailsql.ErrQueryFailed))
	assert.Contains(t, err.Error(), "broken")
}

func TestOpen_ExistingStore(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	created, err := Create(ctx, cfg, logging.NewNullLogger())
	require.NoError(t, err)
	_, err = created.ReplaceTable(ctx, cfg.Table, salesColumns, sliceSource{{int64(1), "Male", 1.0}})
	require.NoError(t, err)
	require.NoError(t, created.Close())

	store, err := Open(ctx, cfg, logging.NewNullLogger())
	require.NoError(t, err)
	defer store.Close()

	count, err := store.Count(ctx, cfg.Table)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, "retail_sales", store.Table())
	assert.Equal(t, retailsql.DriverSQLite, store.Dialect().Name())
}
