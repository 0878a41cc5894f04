// Package export writes query results to an xlsx workbook, one sheet per table.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Sheet pairs a worksheet name with the table written to it.
type Sheet struct {
	Name  string
	Table *frame.Table
}

// Workbook writes sheets to path in order. Each sheet gets a bold, frozen header
// row followed by one row per table row. An existing file is overwritten.
func Workbook(path string, sheets []Sheet) (err error) {
	if len(sheets) == 0 {
		return fmt.Errorf("%s: no sheets: %w", path, retailsql.ErrExportFailed)
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w: %w", path, retailsql.ErrExportFailed, cerr)
		}
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, retailsql.ErrExportFailed, err)
	}

	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err != nil {
			return fmt.Errorf("sheet %s: %w: %w", s.Name, retailsql.ErrExportFailed, err)
		}
		if err := writeSheet(f, s, header); err != nil {
			return fmt.Errorf("sheet %s: %w: %w", s.Name, retailsql.ErrExportFailed, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w: %w", path, retailsql.ErrExportFailed, err)
	}
	return nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	if s.Table == nil {
		return errors.New("nil table")
	}

	headers := make([]any, len(s.Table.Columns))
	for i, c := range s.Table.Columns {
		headers[i] = c
	}
	if err := setRow(f, s.Name, 1, headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(s.Name, 1, 1, headerStyle); err != nil {
		return err
	}

	for r, row := range s.Table.Rows {
		cells := make([]any, len(row))
		for c, v := range row {
			cells[c] = cellValue(v)
		}
		if err := setRow(f, s.Name, r+2, cells); err != nil {
			return err
		}
	}

	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// cellValue maps NaN, which xlsx cannot store, to an empty cell.
func cellValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
