package loader

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/vvka-141/retailsql/internal/db"
)

// inferKind picks the most specific kind every non-empty value parses as:
// bool, then int, then float, then string. Empty values do not vote; a column
// with no values at all is a string column.
func inferKind(values []string) db.Kind {
	canBeBool, canBeInt, canBeFloat := true, true, true
	seen := false

	for _, v := range values {
		if v == "" {
			continue
		}
		seen = true

		if canBeBool {
			switch v {
			case "true", "True", "false", "False":
			default:
				canBeBool = false
			}
		}
		if canBeInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				canBeInt = false
			}
		}
		if canBeFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				canBeFloat = false
			}
		}
		if !canBeBool && !canBeFloat {
			return db.KindString
		}
	}

	switch {
	case !seen:
		return db.KindString
	case canBeBool:
		return db.KindBool
	case canBeInt:
		return db.KindInt
	case canBeFloat:
		return db.KindFloat
	}
	return db.KindString
}

// inferColumns transposes the data rows and infers one ColumnDef per header.
func inferColumns(headers []string, rows [][]string) []db.ColumnDef {
	defs := make([]db.ColumnDef, len(headers))
	column := make([]string, len(rows))
	for i, name := range headers {
		for j, row := range rows {
			column[j] = row[i]
		}
		defs[i] = db.ColumnDef{Name: name, Kind: inferKind(column)}
	}
	return defs
}

func arrowType(k db.Kind) arrow.DataType {
	switch k {
	case db.KindInt:
		return arrow.PrimitiveTypes.Int64
	case db.KindFloat:
		return arrow.PrimitiveTypes.Float64
	case db.KindBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

func arrowSchema(defs []db.ColumnDef) *arrow.Schema {
	fields := make([]arrow.Field, len(defs))
	for i, d := range defs {
		fields[i] = arrow.Field{Name: d.Name, Type: arrowType(d.Kind), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}
