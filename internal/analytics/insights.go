package analytics

import (
	"fmt"

	"github.com/vvka-141/retailsql/internal/report"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// HeadlineCategories are the categories summarised in the headline, in print order.
var HeadlineCategories = []string{"Electronics", "Clothing", "Beauty"}

// CategoryRevenue is the total revenue of one category across all age groups.
type CategoryRevenue struct {
	Category string
	Revenue  float64
}

// Headline is the short summary printed after the query battery.
type Headline struct {
	TopAgeGroup        string
	TopAgeGroupRevenue float64
	MinAvgTransaction  float64
	MaxAvgTransaction  float64
	Categories         []CategoryRevenue
}

// Insights derives the headline from age_group_comparison and category_by_age.
// Ties for the top age group go to the first group in band order.
func Insights(results Results) (*Headline, error) {
	ages, ok := results[AgeGroupComparison]
	if !ok {
		return nil, fmt.Errorf("missing result %s", AgeGroupComparison)
	}
	categories, ok := results[CategoryByAge]
	if !ok {
		return nil, fmt.Errorf("missing result %s", CategoryByAge)
	}

	top, err := ages.ArgMax("total_revenue")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", retailsql.ErrEmptyResult, err)
	}
	group, err := ages.Value(top, "age_group")
	if err != nil {
		return nil, err
	}
	revenues, err := ages.Float64s("total_revenue")
	if err != nil {
		return nil, err
	}
	lo, hi, err := ages.MinMax("avg_transaction")
	if err != nil {
		return nil, err
	}

	h := &Headline{
		TopAgeGroup:        fmt.Sprint(group),
		TopAgeGroupRevenue: revenues[top],
		MinAvgTransaction:  lo,
		MaxAvgTransaction:  hi,
	}
	for _, name := range HeadlineCategories {
		rows, err := categories.Filter("product_category", name)
		if err != nil {
			return nil, err
		}
		sum, err := rows.Sum("category_revenue")
		if err != nil {
			return nil, err
		}
		h.Categories = append(h.Categories, CategoryRevenue{Category: name, Revenue: sum})
	}
	return h, nil
}

// Print writes the headline in the console summary format.
func (h *Headline) Print(p *report.Printer) {
	p.Banner("ANALYTICAL INSIGHTS:")

	p.Heading("Key metrics by age group:")
	p.Line("- Highest revenue: %s - %s", h.TopAgeGroup, report.Thousands(h.TopAgeGroupRevenue, 2))
	p.Line("- Average transaction ranges from %.2f to %.2f", h.MinAvgTransaction, h.MaxAvgTransaction)

	p.Heading("Category popularity:")
	for _, c := range h.Categories {
		p.Line("- %s: %s", c.Category, report.Thousands(c.Revenue, 2))
	}
}
