package retailsql

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Stage completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to open or reach the store
	ExitQueryFailed     = 13 // SQL execution failed or returned nothing to chart
	ExitInputMissing    = 14 // CSV or SQLite store not found
	ExitOutputFailed    = 15 // Chart or workbook could not be written
)

// Defaults reproduce the fixed relative paths the pipeline has always used.
const (
	DefaultDriver          = DriverSQLite
	DefaultStorePath       = "retail_sales.db"
	DefaultTable           = "retail_sales"
	DefaultCSVPath         = "retail_sales_dataset.csv"
	DefaultOutputDir       = "."
	DefaultAnalysisChart   = "retail_sales_analysis.png"
	DefaultAdditionalChart = "additional_analysis.png"
	DefaultWorkbook        = "retail_sales_analysis.xlsx"
	DefaultDPI             = 300
	DefaultTimeout         = 5 * time.Minute

	// DefaultSampleRows is the number of rows shown after a load.
	DefaultSampleRows = 3
)

const (
	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// PostgreSQL authentication methods. AuthPassword uses whatever the DSN carries;
// the cloud methods obtain a short-lived credential at connect time.
const (
	AuthPassword = "password"
	AuthAWS      = "aws"
	AuthAzure    = "azure"
	AuthGoogle   = "google"
)
