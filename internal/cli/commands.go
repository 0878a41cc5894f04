package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// outputFlags holds the output flag values of visualize and run.
var outputFlags struct {
	dir string
	dpi int
}

var loadCmd = &cobra.Command{
	Use:   "load [csv_path]",
	Short: "Load the sales CSV into the store",
	Long: `Load reads the sales CSV, normalises its headers to snake_case, infers a type
per column and replaces the sales table with its rows.

For SQLite the database file is deleted and recreated on every load. For
PostgreSQL the table is dropped and recreated. Loading the same file twice
yields the same table.

The CSV path defaults to input.csv from retailsql.yaml, then
retail_sales_dataset.csv.`,
	Example: `  retailsql load
  retailsql load data/retail_sales_dataset.csv --db out/sales.db
  retailsql load sales.csv --driver postgres --dsn postgres://localhost/retail`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run the analytical query battery and print insights",
	Long: `Query runs the filtered, aggregate and analytical queries against the sales
table, prints each result as a table and finishes with headline insights.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render the dashboards and the Excel workbook",
	Long: `Visualize queries the sales table, writes two PNG dashboards and an eight
sheet Excel workbook into the output directory.`,
	Example: `  retailsql visualize --out-dir reports --dpi 150`,
	Args:    cobra.NoArgs,
	RunE:    runVisualize,
}

var runCmd = &cobra.Command{
	Use:   "run [csv_path]",
	Short: "Load, query and visualize in one go",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(loadCmd, queryCmd, visualizeCmd, runCmd)

	for _, cmd := range []*cobra.Command{visualizeCmd, runCmd} {
		cmd.Flags().StringVar(&outputFlags.dir, "out-dir", retailsql.DefaultOutputDir, "Directory for charts and workbook")
		cmd.Flags().IntVar(&outputFlags.dpi, "dpi", retailsql.DefaultDPI, "Resolution of the PNG charts")
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	return runStages(cmd, args, loadStage)
}

func runQuery(cmd *cobra.Command, args []string) error {
	return runStages(cmd, args, queryStage)
}

func runVisualize(cmd *cobra.Command, args []string) error {
	return runStages(cmd, args, visualizeStage)
}

func runAll(cmd *cobra.Command, args []string) error {
	return runStages(cmd, args, loadStage, queryStage, visualizeStage)
}
