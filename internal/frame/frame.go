// Package frame holds query results in memory as simple row-major tables.
//
// A Table is what every stage passes around: the query runner prints it, the
// visualizer pivots it into chart series, and the exporter writes it as a sheet.
// Cell values are nil, int64, float64, string, bool or time.Time.
package frame

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Table is a named, row-major result set.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// New creates an empty table with the given columns.
func New(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns}
}

// Append adds a row. The row must have one value per column.
func (t *Table) Append(values ...any) {
	if len(values) != len(t.Columns) {
		panic(fmt.Sprintf("frame: table %s has %d columns, got %d values", t.Name, len(t.Columns), len(values)))
	}
	t.Rows = append(t.Rows, values)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Head returns a table with at most n leading rows. Rows are shared, not copied.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Name: t.Name, Columns: t.Columns, Rows: t.Rows[:n]}
}

// ColumnIndex returns the position of column or -1.
func (t *Table) ColumnIndex(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

func (t *Table) mustIndex(column string) (int, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return -1, fmt.Errorf("table %s has no column %q", t.Name, column)
	}
	return idx, nil
}

// Value returns the cell at row, column.
func (t *Table) Value(row int, column string) (any, error) {
	idx, err := t.mustIndex(column)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= len(t.Rows) {
		return nil, fmt.Errorf("table %s: row %d out of range", t.Name, row)
	}
	return t.Rows[row][idx], nil
}

// Float64s returns a numeric column. NULL cells become NaN.
func (t *Table) Float64s(column string) ([]float64, error) {
	idx, err := t.mustIndex(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, ok := ToFloat64(row[idx])
		if !ok {
			if row[idx] != nil {
				return nil, fmt.Errorf("table %s column %s row %d: %T is not numeric", t.Name, column, i, row[idx])
			}
			v = math.NaN()
		}
		out[i] = v
	}
	return out, nil
}

// Strings returns a column rendered as text. NULL cells become "".
func (t *Table) Strings(column string) ([]string, error) {
	idx, err := t.mustIndex(column)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if row[idx] != nil {
			out[i] = FormatValue(row[idx])
		}
	}
	return out, nil
}

// Filter returns the rows whose column renders as value.
func (t *Table) Filter(column, value string) (*Table, error) {
	idx, err := t.mustIndex(column)
	if err != nil {
		return nil, err
	}
	out := &Table{Name: t.Name, Columns: t.Columns}
	for _, row := range t.Rows {
		if row[idx] != nil && FormatValue(row[idx]) == value {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// Sum adds up a numeric column, skipping NULLs.
func (t *Table) Sum(column string) (float64, error) {
	values, err := t.Float64s(column)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range values {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total, nil
}

// ArgMax returns the index of the first row holding the column maximum.
func (t *Table) ArgMax(column string) (int, error) {
	values, err := t.Float64s(column)
	if err != nil {
		return -1, err
	}
	best := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v > values[best] {
			best = i
		}
	}
	if best < 0 {
		return -1, fmt.Errorf("table %s column %s has no values", t.Name, column)
	}
	return best, nil
}

// MinMax returns the smallest and largest values of a numeric column.
func (t *Table) MinMax(column string) (float64, float64, error) {
	values, err := t.Float64s(column)
	if err != nil {
		return 0, 0, err
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0, fmt.Errorf("table %s column %s has no values", t.Name, column)
	}
	return lo, hi, nil
}

// Pivot reshapes a long table into a wide one: one row per distinct index value,
// one column per distinct columns value, cells taken from values. Keys are sorted
// and missing combinations are NaN.
func (t *Table) Pivot(index, columns, values string) (*Table, error) {
	keys, err := t.Strings(index)
	if err != nil {
		return nil, err
	}
	series, err := t.Strings(columns)
	if err != nil {
		return nil, err
	}
	nums, err := t.Float64s(values)
	if err != nil {
		return nil, err
	}

	rowKeys := distinctSorted(keys)
	colKeys := distinctSorted(series)
	rowPos := positions(rowKeys)
	colPos := positions(colKeys)

	out := &Table{Name: t.Name, Columns: append([]string{index}, colKeys...)}
	out.Rows = make([][]any, len(rowKeys))
	filled := make([][]bool, len(rowKeys))
	for i, key := range rowKeys {
		filled[i] = make([]bool, len(colKeys))
		row := make([]any, len(colKeys)+1)
		row[0] = key
		for j := range colKeys {
			row[j+1] = math.NaN()
		}
		out.Rows[i] = row
	}
	for i := range keys {
		r, c := rowPos[keys[i]], colPos[series[i]]
		if filled[r][c] {
			return nil, fmt.Errorf("pivot %s: duplicate entry for %s=%s, %s=%s", t.Name, index, keys[i], columns, series[i])
		}
		filled[r][c] = true
		out.Rows[r][c+1] = nums[i]
	}
	return out, nil
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func positions(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for i, k := range keys {
		m[k] = i
	}
	return m
}

// ToFloat64 converts numeric cells. Non-numeric values report false.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// FormatValue renders a cell for console and sheet output.
// Floats keep at most four decimals with trailing zeros trimmed.
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return formatFloat(n)
	case float32:
		return formatFloat(float64(n))
	case time.Time:
		if n.Hour() == 0 && n.Minute() == 0 && n.Second() == 0 && n.Nanosecond() == 0 {
			return n.Format(time.DateOnly)
		}
		return n.Format(time.DateTime)
	case string:
		return n
	default:
		return fmt.Sprint(n)
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
