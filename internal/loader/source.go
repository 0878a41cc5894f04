package loader

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// recordSource exposes an Arrow record row by row for db.Store.ReplaceTable.
// A nil record is an empty source.
type recordSource struct {
	rec arrow.Record
}

func (s recordSource) NumRows() int {
	if s.rec == nil {
		return 0
	}
	return int(s.rec.NumRows())
}

func (s recordSource) Row(i int, dst []any) {
	for c := range dst {
		dst[c] = cellValue(s.rec.Column(c), i)
	}
}

func cellValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch a := col.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	}
	return col.ValueStr(i)
}
