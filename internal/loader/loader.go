package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	arrowcsv "github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vvka-141/retailsql/internal/db"
	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Report summarises a load for the console.
type Report struct {
	RowsRead   int
	Columns    []db.ColumnInfo
	RowsStored int64
	Sample     *frame.Table
	StorePath  string
}

// Load replaces the sales table with the contents of cfg.CSVPath and verifies the result.
func Load(ctx context.Context, cfg retailsql.LoadConfig, logger retailsql.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.CSVPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", cfg.CSVPath, retailsql.ErrInputNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", cfg.CSVPath, err)
	}

	columns, rec, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.CSVPath, err)
	}
	if rec != nil {
		defer rec.Release()
	}
	src := recordSource{rec: rec}
	logger.Verbose("Loaded %d records from %s", src.NumRows(), cfg.CSVPath)
	for _, c := range columns {
		logger.Verbose("  %s: %s", c.Name, c.Kind)
	}

	store, err := db.Create(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if _, err := store.ReplaceTable(ctx, cfg.Store.Table, columns, src); err != nil {
		return nil, err
	}

	return verify(ctx, store, cfg.Store, src.NumRows())
}

// parse infers the column kinds over the whole file and then decodes it into a
// single Arrow record with that schema. The record is nil when the file has a
// header but no data rows.
func parse(data []byte) ([]db.ColumnDef, arrow.Record, error) {
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("file is empty")
	}

	headers := normalizeHeaders(rows[0])
	columns := inferColumns(headers, rows[1:])
	if len(rows) == 1 {
		return columns, nil, nil
	}

	r := arrowcsv.NewReader(bytes.NewReader(data), arrowSchema(columns),
		arrowcsv.WithAllocator(memory.NewGoAllocator()),
		arrowcsv.WithHeader(true),
		arrowcsv.WithChunk(-1),
		arrowcsv.WithNullReader(true, ""),
	)
	defer r.Release()

	if !r.Next() {
		if err := r.Err(); err != nil {
			return nil, nil, err
		}
		return columns, nil, nil
	}
	rec := r.Record()
	rec.Retain()
	if err := r.Err(); err != nil {
		rec.Release()
		return nil, nil, err
	}
	return columns, rec, nil
}

func verify(ctx context.Context, store *db.Store, cfg retailsql.StoreConfig, read int) (*Report, error) {
	cols, err := store.Columns(ctx, cfg.Table)
	if err != nil {
		return nil, err
	}
	count, err := store.Count(ctx, cfg.Table)
	if err != nil {
		return nil, err
	}
	sample, err := store.Sample(ctx, cfg.Table, retailsql.DefaultSampleRows)
	if err != nil {
		return nil, err
	}
	return &Report{
		RowsRead:   read,
		Columns:    cols,
		RowsStored: count,
		Sample:     sample,
		StorePath:  cfg.Location(),
	}, nil
}
