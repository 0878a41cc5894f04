package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/retailsql/internal/config"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

var rootCmd = &cobra.Command{
	Use:   "retailsql",
	Short: "Retail sales analytics over SQL",
	Long: `retailsql loads a retail sales CSV into a relational store, runs a fixed
battery of analytical SQL queries over it, and renders the results as console
tables, PNG dashboards and an Excel workbook.

The store is an embedded SQLite file by default. Pass --driver postgres and a
DSN to run the same queries against PostgreSQL. Managed databases can log in
with cloud identities instead of a password: --auth aws (RDS IAM), --auth azure
(Entra ID) or --auth google (Cloud SQL IAM).

Stages:
  load       CSV -> store
  query      store -> console tables and insights
  visualize  store -> charts and workbook
  run        all of the above, in order

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Store connection failed
  13 - SQL execution failed or returned no rows to chart
  14 - CSV or SQLite store not found
  15 - Chart or workbook could not be written`,
	SilenceUsage: true,
}

// rootFlags holds the persistent flag values shared by every stage.
var rootFlags struct {
	config  string
	driver  string
	dbPath  string
	dsn     string
	table   string
	timeout time.Duration

	auth           string
	awsRegion      string
	googleInstance string
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("help", false, "Help for retailsql")
	pf.BoolP("verbose", "v", false, "Enable verbose output for all commands")
	pf.StringVar(&rootFlags.config, "config", config.ConfigFileName, "Path to the project config file")
	pf.StringVar(&rootFlags.driver, "driver", "", "Store driver: sqlite or postgres (env: RETAILSQL_DRIVER)")
	pf.StringVar(&rootFlags.dbPath, "db", "", "SQLite database path (env: RETAILSQL_DB)")
	pf.StringVar(&rootFlags.dsn, "dsn", "", "PostgreSQL connection URL (env: RETAILSQL_DSN, DATABASE_URL)")
	pf.StringVar(&rootFlags.table, "table", "", "Sales table name")
	pf.StringVar(&rootFlags.auth, "auth", "", "PostgreSQL authentication: password, aws, azure or google")
	pf.StringVar(&rootFlags.awsRegion, "aws-region", "", "AWS region for RDS IAM authentication (env: AWS_REGION)")
	pf.StringVar(&rootFlags.googleInstance, "google-instance", "", "Cloud SQL instance connection name (project:region:instance)")
	pf.DurationVar(&rootFlags.timeout, "timeout", retailsql.DefaultTimeout, "Maximum duration of a command")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
