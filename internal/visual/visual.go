package visual

import (
	"context"
	"fmt"
	"os"

	"github.com/vvka-141/retailsql/internal/charts"
	"github.com/vvka-141/retailsql/internal/db"
	"github.com/vvka-141/retailsql/internal/export"
	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/internal/report"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Dataset holds every visualizer query result.
type Dataset struct {
	FemaleOver50        *frame.Table
	ElectronicsOver1000 *frame.Table
	Beauty18to25        *frame.Table
	GenderStats         *frame.Table
	CategoryGender      *frame.Table
	Monthly             *frame.Table
	AgeGroups           *frame.Table
	Transactions        *frame.Table
	CategorySummary     *frame.Table
}

// step is one visualizer query. A zero preview prints nothing.
type step struct {
	section string
	name    string
	title   string
	sql     string
	preview int // rows printed; -1 prints all
	dst     func(*Dataset) **frame.Table
}

var steps = []step{
	{section: "SQL QUERIES WITH FILTERING", name: "female_over_50_top10", title: "1. Top 10 purchases by women over 50:", sql: femaleOver50Top10, preview: -1,
		dst: func(d *Dataset) **frame.Table { return &d.FemaleOver50 }},
	{name: "electronics_over_1000", title: "2. Electronics purchases over 1000:", sql: electronicsOver1000, preview: 10,
		dst: func(d *Dataset) **frame.Table { return &d.ElectronicsOver1000 }},
	{name: "beauty_18_25", title: "3. Young customers (18-25) in Beauty:", sql: beauty18to25, preview: 10,
		dst: func(d *Dataset) **frame.Table { return &d.Beauty18to25 }},

	{section: "AGGREGATE QUERIES", name: "gender_stats", title: "4. Statistics by gender:", sql: genderStats, preview: -1,
		dst: func(d *Dataset) **frame.Table { return &d.GenderStats }},
	{name: "category_gender", title: "5. Sales by gender within categories:", sql: categoryGender, preview: -1,
		dst: func(d *Dataset) **frame.Table { return &d.CategoryGender }},
	{name: "monthly", title: "6. Monthly sales dynamics:", sql: monthly, preview: 15,
		dst: func(d *Dataset) **frame.Table { return &d.Monthly }},
	{name: "age_groups", title: "7. Comparison by age group:", sql: ageGroups, preview: -1,
		dst: func(d *Dataset) **frame.Table { return &d.AgeGroups }},

	{name: "transactions", sql: transactions,
		dst: func(d *Dataset) **frame.Table { return &d.Transactions }},
	{name: "category_summary", sql: categorySummary,
		dst: func(d *Dataset) **frame.Table { return &d.CategorySummary }},
}

// Collect runs the visualizer queries in order and prints the previews.
func Collect(ctx context.Context, store *db.Store, printer *report.Printer) (*Dataset, error) {
	d := &Dataset{}
	for _, s := range steps {
		if s.section != "" {
			printer.Banner(s.section)
		}
		t, err := store.QueryTemplate(ctx, s.name, s.sql)
		if err != nil {
			return nil, err
		}
		*s.dst(d) = t

		switch {
		case s.preview < 0:
			printer.Heading(s.title)
			printer.Table(t)
		case s.preview > 0:
			printer.Heading(s.title)
			printer.Table(t.Head(s.preview))
		}
	}
	return d, nil
}

// Sheets returns the workbook layout: eight sheets in a fixed order.
func (d *Dataset) Sheets() []export.Sheet {
	return []export.Sheet{
		{Name: "Female_50+", Table: d.FemaleOver50},
		{Name: "Electronics_1000+", Table: d.ElectronicsOver1000},
		{Name: "Beauty_18-25", Table: d.Beauty18to25},
		{Name: "Gender_Stats", Table: d.GenderStats},
		{Name: "Category_Gender_Sales", Table: d.CategoryGender},
		{Name: "Monthly_Dynamics", Table: d.Monthly},
		{Name: "Age_Groups", Table: d.AgeGroups},
		{Name: "By_Category", Table: d.CategorySummary},
	}
}

// Render writes both dashboards and the workbook under out.Dir and returns the
// paths written, in order.
func Render(d *Dataset, out retailsql.OutputConfig, logger retailsql.Logger) ([]string, error) {
	if err := out.Validate(); err != nil {
		return nil, err
	}
	dir := out.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w: %w", dir, retailsql.ErrRenderFailed, err)
	}

	analysis := out.AnalysisChartPath()
	logger.Verbose("Rendering %s at %d dpi", analysis, out.DPI)
	if err := charts.AnalysisDashboard(analysis, out.DPI, charts.AnalysisData{
		Transactions:   d.Transactions,
		CategoryGender: d.CategoryGender,
		Monthly:        d.Monthly,
		AgeGroups:      d.AgeGroups,
	}); err != nil {
		return nil, err
	}

	additional := out.AdditionalChartPath()
	logger.Verbose("Rendering %s at %d dpi", additional, out.DPI)
	if err := charts.AdditionalDashboard(additional, out.DPI, charts.AdditionalData{
		CategorySummary: d.CategorySummary,
		AgeGroups:       d.AgeGroups,
	}); err != nil {
		return []string{analysis}, err
	}

	workbook := out.WorkbookPath()
	logger.Verbose("Writing %s", workbook)
	if err := export.Workbook(workbook, d.Sheets()); err != nil {
		return []string{analysis, additional}, err
	}
	return []string{analysis, additional, workbook}, nil
}

// Run collects the dataset from store, renders every output and prints a summary.
func Run(ctx context.Context, store *db.Store, out retailsql.OutputConfig, printer *report.Printer, logger retailsql.Logger) error {
	d, err := Collect(ctx, store, printer)
	if err != nil {
		return err
	}

	printer.Banner("BUILDING VISUALIZATIONS")
	written, err := Render(d, out, logger)
	if err != nil {
		return err
	}

	printer.Banner("DONE!")
	printer.Line("Files created:")
	for i, path := range written {
		printer.Line("%d. %s", i+1, path)
	}
	return nil
}
