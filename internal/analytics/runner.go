package analytics

import (
	"context"
	"fmt"

	"github.com/vvka-141/retailsql/internal/db"
	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/internal/report"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Result names exposed to callers of Run.
const (
	AgeGenderSales      = "age_gender_sales"
	CategoryGenderSales = "category_gender_sales"
	MonthlySales        = "monthly_sales"
	CorrelationData     = "correlation_data"
	AgeGroupComparison  = "age_group_comparison"
	CategoryByAge       = "category_by_age"
	Seasonality         = "seasonality"
)

// Results holds the aggregate and analytical query results by name.
type Results map[string]*frame.Table

// preview controls how much of a result is printed.
type preview int

const (
	previewFull      preview = iota
	previewHeadCount         // first 5 rows, title carries the total
	previewCorrelation       // first 10 rows, then the correlation matrix
)

// query is one entry of the fixed battery.
type query struct {
	section string
	name    string
	title   string
	sql     string
	preview preview
	keep    bool
}

var battery = []query{
	{section: "1. FILTERED QUERIES", name: "female_over_30_top10", title: "1.1 Top 10 sales (women over 30):", sql: femaleOver30Top10},
	{name: "electronics_over_1000", title: "1.2 Electronics sales over 1000 (%d records total):", sql: electronicsOver1000, preview: previewHeadCount},
	{name: "q4_2023_sales", title: "1.3 Sales in Q4 2023 (%d records total):", sql: q4Sales2023, preview: previewHeadCount},

	{section: "2. AGGREGATE FUNCTIONS", name: AgeGenderSales, title: "2.1 Sales by age group and gender:", sql: ageGenderSales, keep: true},
	{name: CategoryGenderSales, title: "2.2 Sales by gender within categories:", sql: categoryGenderSales, keep: true},
	{name: MonthlySales, title: "2.3 Monthly sales by gender:", sql: monthlySales, keep: true},

	{section: "3. ANALYTICAL QUERIES", name: CorrelationData, title: "3.1 Correlation input (first 10 rows):", sql: correlationData, preview: previewCorrelation, keep: true},
	{name: AgeGroupComparison, title: "3.2 Age group comparison:", sql: ageGroupComparison, keep: true},
	{name: CategoryByAge, title: "3.3 Category popularity by age group:", sql: categoryByAge, keep: true},
	{name: Seasonality, title: "3.4 Seasonality by month:", sql: seasonality, keep: true},
}

// Runner executes the query battery against one store and prints each result.
// Thread-Safety: NOT safe for concurrent use.
type Runner struct {
	store   *db.Store
	printer *report.Printer
	logger  retailsql.Logger
}

// NewRunner creates a Runner. All parameters are required.
func NewRunner(store *db.Store, printer *report.Printer, logger retailsql.Logger) *Runner {
	if store == nil {
		panic("store cannot be nil")
	}
	if printer == nil {
		panic("printer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Runner{store: store, printer: printer, logger: logger}
}

// Run executes every query in order. The first failure aborts the run.
func (r *Runner) Run(ctx context.Context) (Results, error) {
	results := make(Results, 7)

	for _, q := range battery {
		if q.section != "" {
			r.printer.Banner(q.section)
		}

		t, err := r.store.QueryTemplate(ctx, q.name, q.sql)
		if err != nil {
			return nil, err
		}
		r.logger.Verbose("%s returned %d rows", q.name, t.Len())

		if err := r.print(q, t); err != nil {
			return nil, err
		}
		if q.keep {
			results[q.name] = t
		}
	}
	return results, nil
}

func (r *Runner) print(q query, t *frame.Table) error {
	switch q.preview {
	case previewHeadCount:
		r.printer.Headingf(q.title, t.Len())
		r.printer.Table(t.Head(5))

	case previewCorrelation:
		r.printer.Heading(q.title)
		r.printer.Table(t.Head(10))

		matrix, err := t.Correlation(t.Columns...)
		if err != nil {
			return fmt.Errorf("%s: %w", q.name, err)
		}
		r.printer.Heading("Correlation matrix of numeric features:")
		r.printer.Table(matrix.Round(3))

	default:
		r.printer.Heading(q.title)
		r.printer.Table(t)
	}
	return nil
}
