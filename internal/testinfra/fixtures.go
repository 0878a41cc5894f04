package testinfra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vvka-141/retailsql/internal/db"
	"github.com/vvka-141/retailsql/internal/logging"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Sale is one fixture transaction.
type Sale struct {
	TransactionID int64
	Date          string
	CustomerID    string
	Gender        string
	Age           int64
	Category      string
	Quantity      int64
	PricePerUnit  int64
	TotalAmount   int64
}

// SalesColumns is the schema the loader produces for the Kaggle retail dataset.
var SalesColumns = []db.ColumnDef{
	{Name: "transaction_id", Kind: db.KindInt},
	{Name: "date", Kind: db.KindString},
	{Name: "customer_id", Kind: db.KindString},
	{Name: "gender", Kind: db.KindString},
	{Name: "age", Kind: db.KindInt},
	{Name: "product_category", Kind: db.KindString},
	{Name: "quantity", Kind: db.KindInt},
	{Name: "price_per_unit", Kind: db.KindInt},
	{Name: "total_amount", Kind: db.KindInt},
}

// SampleSales covers every age band of both band schemes, both genders, all three
// categories and two calendar years.
var SampleSales = Sales{
	{1, "2023-01-15", "C001", "Female", 20, "Beauty", 2, 50, 100},
	{2, "2023-02-10", "C002", "Male", 30, "Clothing", 1, 300, 300},
	{3, "2023-03-05", "C003", "Female", 40, "Electronics", 3, 500, 1500},
	{4, "2023-10-20", "C004", "Male", 50, "Electronics", 4, 300, 1200},
	{5, "2023-11-11", "C005", "Female", 60, "Clothing", 2, 25, 50},
	{6, "2023-12-31", "C006", "Female", 35, "Beauty", 1, 500, 500},
	{7, "2024-01-01", "C007", "Male", 25, "Electronics", 2, 30, 60},
}

// Sales adapts a fixture slice to db.RowSource.
type Sales []Sale

func (s Sales) NumRows() int { return len(s) }

func (s Sales) Row(i int, dst []any) {
	r := s[i]
	dst[0], dst[1], dst[2] = r.TransactionID, r.Date, r.CustomerID
	dst[3], dst[4], dst[5] = r.Gender, r.Age, r.Category
	dst[6], dst[7], dst[8] = r.Quantity, r.PricePerUnit, r.TotalAmount
}

// SeedSQLite creates a SQLite store in a temp dir holding sales and returns its config.
func SeedSQLite(t *testing.T, sales Sales) retailsql.StoreConfig {
	t.Helper()
	cfg := retailsql.StoreConfig{
		Driver: retailsql.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "retail_sales.db"),
		Table:  retailsql.DefaultTable,
	}
	Seed(t, cfg, sales)
	return cfg
}

// Seed replaces the sales table of the store described by cfg.
func Seed(t *testing.T, cfg retailsql.StoreConfig, sales Sales) {
	t.Helper()
	ctx := context.Background()

	store, err := db.Create(ctx, cfg, logging.NewNullLogger())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	if _, err := store.ReplaceTable(ctx, cfg.Table, SalesColumns, sales); err != nil {
		t.Fatalf("seed %s: %v", cfg.Table, err)
	}
}

// OpenStore opens the store described by cfg and closes it when the test ends.
func OpenStore(t *testing.T, cfg retailsql.StoreConfig) *db.Store {
	t.Helper()
	store, err := db.Open(context.Background(), cfg, logging.NewNullLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
