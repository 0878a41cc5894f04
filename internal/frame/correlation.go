package frame

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Correlation returns the Pearson correlation matrix of the named numeric columns.
//
// Each pair uses only the rows where both values are present, so a column with
// NULLs (such as an unmapped category code) does not shrink the other pairs.
// A pair with fewer than two complete rows or zero variance yields NaN.
func (t *Table) Correlation(columns ...string) (*Table, error) {
	data := make([][]float64, len(columns))
	for i, c := range columns {
		values, err := t.Float64s(c)
		if err != nil {
			return nil, err
		}
		data[i] = values
	}

	out := New("correlation", append([]string{""}, columns...)...)
	for i, ci := range columns {
		row := make([]any, len(columns)+1)
		row[0] = ci
		for j := range columns {
			row[j+1] = pairwisePearson(data[i], data[j])
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func pairwisePearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	_, sx := stat.MeanStdDev(xs, nil)
	_, sy := stat.MeanStdDev(ys, nil)
	if sx == 0 || sy == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// Round returns a copy with every float cell rounded to the given decimals.
func (t *Table) Round(decimals int) *Table {
	scale := math.Pow(10, float64(decimals))
	out := &Table{Name: t.Name, Columns: t.Columns, Rows: make([][]any, len(t.Rows))}
	for i, row := range t.Rows {
		cp := make([]any, len(row))
		for j, v := range row {
			if f, ok := v.(float64); ok && !math.IsNaN(f) {
				v = math.Round(f*scale) / scale
			}
			cp[j] = v
		}
		out.Rows[i] = cp
	}
	return out
}
