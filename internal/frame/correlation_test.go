package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cell(t *testing.T, m *Table, row, col int) float64 {
	t.Helper()
	f, ok := m.Rows[row][col+1].(float64)
	require.True(t, ok)
	return f
}

func TestCorrelation_PerfectRelationships(t *testing.T) {
	tbl := New("features", "quantity", "total_amount", "age")
	tbl.Append(int64(1), 100.0, int64(60))
	tbl.Append(int64(2), 200.0, int64(40))
	tbl.Append(int64(3), 300.0, int64(20))

	m, err := tbl.Correlation("quantity", "total_amount", "age")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "quantity", "total_amount", "age"}, m.Columns)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0, cell(t, m, i, i), 1e-12, "diagonal")
	}
	assert.InDelta(t, 1.0, cell(t, m, 0, 1), 1e-12)
	assert.InDelta(t, -1.0, cell(t, m, 0, 2), 1e-12)
	assert.InDelta(t, cell(t, m, 2, 1), cell(t, m, 1, 2), 1e-12, "symmetric")
}

func TestCorrelation_PairwiseNulls(t *testing.T) {
	tbl := New("features", "x", "y", "code")
	tbl.Append(1.0, 2.0, int64(1))
	tbl.Append(2.0, 4.0, nil)
	tbl.Append(3.0, 6.5, int64(3))
	tbl.Append(4.0, 8.0, int64(2))

	m, err := tbl.Correlation("x", "y", "code")
	require.NoError(t, err)

	// x/y use all four rows; x/code only the three complete ones.
	assert.Greater(t, cell(t, m, 0, 1), 0.99)
	assert.InDelta(t, math.Sqrt(3.0/7.0), cell(t, m, 0, 2), 1e-9)
}

func TestCorrelation_ZeroVarianceIsNaN(t *testing.T) {
	tbl := New("features", "is_male", "age")
	tbl.Append(int64(1), int64(20))
	tbl.Append(int64(1), int64(30))

	m, err := tbl.Correlation("is_male", "age")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(cell(t, m, 0, 1)))
}

func TestTable_Round(t *testing.T) {
	tbl := New("t", "v", "label")
	tbl.Append(0.123456, "a")

	r := tbl.Round(3)
	assert.Equal(t, 0.123, r.Rows[0][0])
	assert.Equal(t, "a", r.Rows[0][1])
	assert.Equal(t, 0.123456, tbl.Rows[0][0], "original untouched")
}
