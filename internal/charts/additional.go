package charts

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// AdditionalData feeds the two-panel category and age-group dashboard.
type AdditionalData struct {
	// CategorySummary has product_category, total_sales.
	CategorySummary *frame.Table
	// AgeGroups has age_group, transaction_count in band order.
	AgeGroups *frame.Table
}

// AdditionalDashboard renders the 1x2 dashboard: revenue share by category and
// transaction counts per age group.
func AdditionalDashboard(path string, dpi int, d AdditionalData) error {
	if err := requireRows(d.CategorySummary, d.AgeGroups); err != nil {
		return err
	}

	pie, err := categoryPie(d.CategorySummary)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, retailsql.ErrRenderFailed, err)
	}
	counts, err := ageGroupBars(d.AgeGroups, "transaction_count", "Transactions by age group", "Transactions",
		func(v float64) string { return strconv.Itoa(int(v)) })
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, retailsql.ErrRenderFailed, err)
	}

	fig := figure{
		width:  15 * vg.Inch,
		height: 6 * vg.Inch,
		plots:  [][]*plot.Plot{{pie, counts}},
	}
	return fig.save(path, dpi)
}

func categoryPie(t *frame.Table) (*plot.Plot, error) {
	labels, err := t.Strings("product_category")
	if err != nil {
		return nil, err
	}
	values, err := t.Float64s("total_sales")
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Sales by category"
	p.HideAxes()
	p.Add(pieChart{values: zeroNaN(values), labels: labels, colors: sliceColors})
	return p, nil
}
