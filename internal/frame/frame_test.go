package frame

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesByGender() *Table {
	t := New("sales", "product_category", "gender", "total_sales")
	t.Append("Electronics", "Male", int64(500))
	t.Append("Beauty", "Female", int64(300))
	t.Append("Electronics", "Female", int64(700))
	t.Append("Beauty", "Male", 120.5)
	t.Append("Clothing", "Female", nil)
	return t
}

func TestTable_HeadAndLen(t *testing.T) {
	tbl := salesByGender()

	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, 2, tbl.Head(2).Len())
	assert.Equal(t, 5, tbl.Head(10).Len())
	assert.Equal(t, 5, tbl.Head(-1).Len())
}

func TestTable_AppendPanicsOnWidthMismatch(t *testing.T) {
	tbl := New("t", "a", "b")
	assert.Panics(t, func() { tbl.Append(1) })
}

func TestTable_SumSkipsNulls(t *testing.T) {
	total, err := salesByGender().Sum("total_sales")
	require.NoError(t, err)
	assert.InDelta(t, 1620.5, total, 1e-9)
}

func TestTable_Filter(t *testing.T) {
	electronics, err := salesByGender().Filter("product_category", "Electronics")
	require.NoError(t, err)
	assert.Equal(t, 2, electronics.Len())

	total, err := electronics.Sum("total_sales")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, total)
}

func TestTable_ArgMaxFirstOnTies(t *testing.T) {
	tbl := New("t", "k", "v")
	tbl.Append("a", 1.0)
	tbl.Append("b", 3.0)
	tbl.Append("c", 3.0)

	idx, err := tbl.ArgMax("v")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestTable_MinMax(t *testing.T) {
	lo, hi, err := salesByGender().MinMax("total_sales")
	require.NoError(t, err)
	assert.Equal(t, 120.5, lo)
	assert.Equal(t, 700.0, hi)

	_, _, err = New("empty", "v").MinMax("v")
	assert.Error(t, err)
}

func TestTable_UnknownColumn(t *testing.T) {
	_, err := salesByGender().Float64s("missing")
	assert.ErrorContains(t, err, "missing")
}

func TestTable_Float64sRejectsText(t *testing.T) {
	_, err := salesByGender().Float64s("gender")
	assert.Error(t, err)
}

func TestTable_Pivot(t *testing.T) {
	wide, err := salesByGender().Pivot("product_category", "gender", "total_sales")
	require.NoError(t, err)

	assert.Equal(t, []string{"product_category", "Female", "Male"}, wide.Columns)
	require.Equal(t, 3, wide.Len())
	assert.Equal(t, "Beauty", wide.Rows[0][0])
	assert.Equal(t, 300.0, wide.Rows[0][1])
	assert.Equal(t, 120.5, wide.Rows[0][2])
	assert.Equal(t, "Clothing", wide.Rows[1][0])
	assert.True(t, math.IsNaN(wide.Rows[1][2].(float64)), "missing combination is NaN")
	assert.Equal(t, 700.0, wide.Rows[2][1])
}

func TestTable_PivotRejectsDuplicates(t *testing.T) {
	tbl := New("t", "month", "gender", "sales")
	tbl.Append("2023-01", "Male", 1.0)
	tbl.Append("2023-01", "Male", 2.0)

	_, err := tbl.Pivot("month", "gender", "sales")
	assert.ErrorContains(t, err, "duplicate")
}

func TestTable_PivotRejectsDuplicateAfterNull(t *testing.T) {
	tbl := New("t", "month", "gender", "sales")
	tbl.Append("2023-01", "Male", nil)
	tbl.Append("2023-01", "Male", 2.0)

	_, err := tbl.Pivot("month", "gender", "sales")
	assert.ErrorContains(t, err, "duplicate entry for month=2023-01, gender=Male")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{int64(42), "42"},
		{3.0, "3"},
		{456.123456, "456.1235"},
		{0.5, "0.5"},
		{-0.00001, "0"},
		{math.NaN(), "NaN"},
		{"Beauty", "Beauty"},
		{true, "true"},
		{time.Date(2023, 11, 24, 0, 0, 0, 0, time.UTC), "2023-11-24"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}
