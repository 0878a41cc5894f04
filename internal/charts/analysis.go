package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/internal/report"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// AnalysisData feeds the six-panel sales dashboard.
type AnalysisData struct {
	// Transactions has one row per sale: age, gender, total_amount, quantity.
	Transactions *frame.Table
	// CategoryGender has product_category, gender, total_sales.
	CategoryGender *frame.Table
	// Monthly has month, gender, total_sales.
	Monthly *frame.Table
	// AgeGroups has age_group, total_sales, avg_transaction in band order.
	AgeGroups *frame.Table
}

// correlated are the transaction columns shown in the heatmap.
var correlated = []string{"age", "total_amount", "quantity"}

// AnalysisDashboard renders the 2x3 sales dashboard to path.
func AnalysisDashboard(path string, dpi int, d AnalysisData) error {
	if err := requireRows(d.Transactions, d.CategoryGender, d.Monthly, d.AgeGroups); err != nil {
		return err
	}

	panels := []func() (*plot.Plot, error){
		func() (*plot.Plot, error) { return ageHistogram(d.Transactions) },
		func() (*plot.Plot, error) { return categoryGenderBars(d.CategoryGender) },
		func() (*plot.Plot, error) { return monthlyLines(d.Monthly) },
		func() (*plot.Plot, error) {
			return ageGroupBars(d.AgeGroups, "total_sales", "Sales by age group", "Total sales",
				func(v float64) string { return report.Thousands(v, 0) })
		},
		func() (*plot.Plot, error) {
			return ageGroupBars(d.AgeGroups, "avg_transaction", "Average transaction by age group", "Average transaction",
				func(v float64) string { return fmt.Sprintf("%.1f", v) })
		},
		func() (*plot.Plot, error) { return correlationHeatmap(d.Transactions) },
	}

	plots := [][]*plot.Plot{make([]*plot.Plot, 3), make([]*plot.Plot, 3)}
	for i, build := range panels {
		p, err := build()
		if err != nil {
			return fmt.Errorf("%s: %w: %w", path, retailsql.ErrRenderFailed, err)
		}
		plots[i/3][i%3] = p
	}

	fig := figure{
		title:  "Retail Sales Analysis",
		width:  18 * vg.Inch,
		height: 12 * vg.Inch,
		plots:  plots,
	}
	return fig.save(path, dpi)
}

func ageHistogram(tx *frame.Table) (*plot.Plot, error) {
	ages, err := tx.Float64s("age")
	if err != nil {
		return nil, err
	}
	genders, err := tx.Strings("gender")
	if err != nil {
		return nil, err
	}

	p := newPlot("Sales distribution by age", "Age", "Transactions")
	p.Legend.Top = true
	for i, g := range firstSeen(genders) {
		var values plotter.Values
		for j, age := range ages {
			if genders[j] == g && !math.IsNaN(age) {
				values = append(values, age)
			}
		}
		if len(values) == 0 {
			continue
		}
		h, err := plotter.NewHist(values, 20)
		if err != nil {
			return nil, fmt.Errorf("age histogram for %s: %w", g, err)
		}
		h.FillColor = translucent(seriesColor(i))
		h.LineStyle.Color = color.Black
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(g, h)
	}
	return p, nil
}

func categoryGenderBars(t *frame.Table) (*plot.Plot, error) {
	wide, err := t.Pivot("product_category", "gender", "total_sales")
	if err != nil {
		return nil, err
	}
	categories, err := wide.Strings("product_category")
	if err != nil {
		return nil, err
	}

	p := newPlot("Sales by gender within categories", "Product category", "Total sales")
	p.Legend.Top = true

	genders := wide.Columns[1:]
	width := vg.Points(28)
	for i, g := range genders {
		values, err := wide.Float64s(g)
		if err != nil {
			return nil, err
		}
		bars, err := plotter.NewBarChart(zeroNaN(values), width)
		if err != nil {
			return nil, fmt.Errorf("category bars for %s: %w", g, err)
		}
		bars.Color = seriesColor(i)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(i)-float64(len(genders)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(g, bars)
	}
	p.NominalX(categories...)
	return p, nil
}

func monthlyLines(t *frame.Table) (*plot.Plot, error) {
	wide, err := t.Pivot("month", "gender", "total_sales")
	if err != nil {
		return nil, err
	}
	months, err := wide.Strings("month")
	if err != nil {
		return nil, err
	}

	p := newPlot("Monthly sales", "Month", "Total sales")
	p.Legend.Top = true
	for i, g := range wide.Columns[1:] {
		values, err := wide.Float64s(g)
		if err != nil {
			return nil, err
		}
		var xys plotter.XYs
		for x, v := range values {
			if !math.IsNaN(v) {
				xys = append(xys, plotter.XY{X: float64(x), Y: v})
			}
		}
		if len(xys) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("monthly line for %s: %w", g, err)
		}
		line.Color = seriesColor(i)
		line.Width = vg.Points(1.5)
		points.Color = seriesColor(i)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(g, line, points)
	}
	p.NominalX(months...)
	rotateXTicks(p)
	return p, nil
}

// ageGroupBars draws one colored bar per age band with its value printed on top.
func ageGroupBars(t *frame.Table, column, title, ylabel string, label func(float64) string) (*plot.Plot, error) {
	bands, err := t.Strings("age_group")
	if err != nil {
		return nil, err
	}
	values, err := t.Float64s(column)
	if err != nil {
		return nil, err
	}
	values = zeroNaN(values)

	p := newPlot(title, "Age group", ylabel)
	if err := addLabelledBars(p, values, label); err != nil {
		return nil, err
	}
	p.NominalX(bands...)
	return p, nil
}

func addLabelledBars(p *plot.Plot, values []float64, label func(float64) string) error {
	top := 0.0
	xys := make(plotter.XYs, len(values))
	texts := make([]string, len(values))
	for i, v := range values {
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(40))
		if err != nil {
			return err
		}
		bar.XMin = float64(i)
		bar.Color = cycle(bandColors, i)
		bar.LineStyle.Width = 0
		p.Add(bar)

		xys[i] = plotter.XY{X: float64(i), Y: v}
		texts[i] = label(v)
		top = math.Max(top, v)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}
	labels.Offset = vg.Point{Y: vg.Points(2)}
	p.Add(labels)
	p.Y.Min = 0
	p.Y.Max = top * 1.12
	return nil
}

func correlationHeatmap(tx *frame.Table) (*plot.Plot, error) {
	m, err := tx.Correlation(correlated...)
	if err != nil {
		return nil, err
	}
	grid := matrixGrid{m: m}

	heat := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(255))
	heat.Min, heat.Max = -1, 1

	p := plot.New()
	p.Title.Text = "Correlation matrix"
	p.Title.Padding = vg.Points(6)
	p.Add(heat)

	n := len(correlated)
	xys := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			texts = append(texts, fmt.Sprintf("%.2f", grid.Z(c, r)))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	reversed := make([]string, n)
	for i, name := range correlated {
		reversed[n-1-i] = name
	}
	p.NominalX(correlated...)
	p.NominalY(reversed...)
	return p, nil
}

// matrixGrid exposes a correlation table as a heat map grid with the first
// variable in the top row.
type matrixGrid struct {
	m *frame.Table
}

func (g matrixGrid) Dims() (c, r int) {
	return g.m.Len(), g.m.Len()
}

func (g matrixGrid) Z(c, r int) float64 {
	v, _ := frame.ToFloat64(g.m.Rows[g.m.Len()-1-r][c+1])
	return v
}

func (g matrixGrid) X(c int) float64 { return float64(c) }

func (g matrixGrid) Y(r int) float64 { return float64(r) }

func firstSeen(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func zeroNaN(values []float64) plotter.Values {
	out := make(plotter.Values, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			out[i] = v
		}
	}
	return out
}

func requireRows(tables ...*frame.Table) error {
	for _, t := range tables {
		if t == nil || t.Len() == 0 {
			name := "<nil>"
			if t != nil {
				name = t.Name
			}
			return fmt.Errorf("chart input %s: %w", name, retailsql.ErrEmptyResult)
		}
	}
	return nil
}
