package analytics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/internal/report"
	"github.com/vvka-141/retailsql/internal/testinfra"
)

func TestInsights(t *testing.T) {
	results, _ := runSample(t, testinfra.SampleSales)

	h, err := Insights(results)
	require.NoError(t, err)

	assert.Equal(t, "36-45 (Middle age)", h.TopAgeGroup)
	assert.Equal(t, 1500.0, h.TopAgeGroupRevenue)
	assert.Equal(t, 50.0, h.MinAvgTransaction)
	assert.Equal(t, 1500.0, h.MaxAvgTransaction)
	assert.Equal(t, []CategoryRevenue{
		{Category: "Electronics", Revenue: 2760},
		{Category: "Clothing", Revenue: 350},
		{Category: "Beauty", Revenue: 600},
	}, h.Categories)
}

func TestInsights_CategoryTotalsMatchGenderSplit(t *testing.T) {
	results, _ := runSample(t, testinfra.SampleSales)

	h, err := Insights(results)
	require.NoError(t, err)

	byGender := results[CategoryGenderSales]
	for _, c := range h.Categories {
		rows, err := byGender.Filter("product_category", c.Category)
		require.NoError(t, err)
		sum, err := rows.Sum("total_sales")
		require.NoError(t, err)
		assert.Equal(t, sum, c.Revenue, c.Category)
	}
}

func TestInsights_TopGroupTieGoesToFirst(t *testing.T) {
	ages := frame.New(AgeGroupComparison, "age_group", "total_revenue", "avg_transaction")
	ages.Append("18-25 (Youth)", 500.0, 10.0)
	ages.Append("26-35 (Young adults)", 500.0, 20.0)
	results := Results{
		AgeGroupComparison: ages,
		CategoryByAge:      frame.New(CategoryByAge, "age_group", "product_category", "category_revenue"),
	}

	h, err := Insights(results)
	require.NoError(t, err)
	assert.Equal(t, "18-25 (Youth)", h.TopAgeGroup)
	assert.Equal(t, 0.0, h.Categories[0].Revenue)
}

func TestInsights_MissingResult(t *testing.T) {
	_, err := Insights(Results{})
	assert.Error(t, err)
}

func TestHeadline_Print(t *testing.T) {
	var out bytes.Buffer
	h := &Headline{
		TopAgeGroup:        "26-35 (Young adults)",
		TopAgeGroupRevenue: 123456.5,
		MinAvgTransaction:  401.25,
		MaxAvgTransaction:  512.5,
		Categories:         []CategoryRevenue{{Category: "Electronics", Revenue: 156905}},
	}
	h.Print(report.NewPrinter(&out, false))

	assert.Contains(t, out.String(), "- Highest revenue: 26-35 (Young adults) - 123,456.50")
	assert.Contains(t, out.String(), "- Average transaction ranges from 401.25 to 512.50")
	assert.Contains(t, out.String(), "- Electronics: 156,905.00")
}
