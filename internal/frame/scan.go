package frame

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// FromRows drains rows into a Table and closes them.
// Driver values are normalised so both store drivers yield the same cell types:
// []byte becomes string, NUMERIC/DECIMAL text becomes float64, narrow integers become int64.
func FromRows(name string, rows *sql.Rows) (*Table, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", name, err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("reading column types of %s: %w", name, err)
	}
	numeric := make([]bool, len(types))
	for i, ct := range types {
		switch strings.ToUpper(ct.DatabaseTypeName()) {
		case "NUMERIC", "DECIMAL":
			numeric[i] = true
		}
	}

	t := New(name, columns...)
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", name, err)
		}
		for i, v := range raw {
			raw[i] = normalize(v, numeric[i])
		}
		t.Rows = append(t.Rows, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", name, err)
	}
	return t, nil
}

func normalize(v any, numeric bool) any {
	switch n := v.(type) {
	case []byte:
		return normalize(string(n), numeric)
	case string:
		if numeric {
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f
			}
		}
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case float32:
		return float64(n)
	}
	return v
}
