package retailsql

import (
	"errors"
	"fmt"
	"path/filepath"
)

// StoreConfig identifies the relational store holding the transaction table.
type StoreConfig struct {
	// Driver is DriverSQLite or DriverPostgres.
	Driver string

	// Path is the SQLite database file. Ignored for PostgreSQL.
	Path string

	// DSN is the PostgreSQL connection URL. Ignored for SQLite.
	DSN string

	// Table is the name of the sales table.
	Table string

	// Auth selects how a PostgreSQL login is authenticated. Empty means AuthPassword.
	Auth string

	// AWSRegion is required for AuthAWS (RDS IAM tokens are region-scoped).
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthGoogle.
	GoogleInstance string
}

// Validate checks if the StoreConfig names a usable store.
// It returns a multi-error if multiple validation failures occur.
func (c *StoreConfig) Validate() error {
	var errs []error

	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			errs = append(errs, fmt.Errorf("sqlite store requires a database path: %w", ErrInvalidConfig))
		}
	case DriverPostgres:
		if c.DSN == "" {
			errs = append(errs, fmt.Errorf("postgres store requires a DSN (--dsn or $RETAILSQL_DSN): %w", ErrInvalidConfig))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported driver %q (want %s or %s): %w", c.Driver, DriverSQLite, DriverPostgres, ErrInvalidConfig))
	}

	if c.Table == "" {
		errs = append(errs, fmt.Errorf("table name is required: %w", ErrInvalidConfig))
	}

	switch c.Auth {
	case "", AuthPassword:
	case AuthAWS, AuthAzure, AuthGoogle:
		if c.Driver != DriverPostgres {
			errs = append(errs, fmt.Errorf("%s authentication requires the postgres driver: %w", c.Auth, ErrInvalidConfig))
		}
		if c.Auth == AuthAWS && c.AWSRegion == "" {
			errs = append(errs, fmt.Errorf("aws authentication requires a region (--aws-region or $AWS_REGION): %w", ErrInvalidConfig))
		}
		if c.Auth == AuthGoogle && c.GoogleInstance == "" {
			errs = append(errs, fmt.Errorf("google authentication requires a Cloud SQL instance (--google-instance): %w", ErrInvalidConfig))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported auth method %q (want %s, %s, %s or %s): %w",
			c.Auth, AuthPassword, AuthAWS, AuthAzure, AuthGoogle, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Location describes the store for console output without exposing credentials.
func (c *StoreConfig) Location() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return "postgres table " + c.Table
}

// LoadConfig contains everything the loader needs.
type LoadConfig struct {
	Store   StoreConfig
	CSVPath string
}

// Validate checks if the LoadConfig has all required fields and valid values.
func (c *LoadConfig) Validate() error {
	var errs []error
	if err := c.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.CSVPath == "" {
		errs = append(errs, fmt.Errorf("CSV path is required: %w", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// OutputConfig names the files written by the visualizer.
type OutputConfig struct {
	Dir             string
	AnalysisChart   string
	AdditionalChart string
	Workbook        string
	DPI             int
}

// Validate checks the output names and resolution.
func (c *OutputConfig) Validate() error {
	var errs []error
	if c.AnalysisChart == "" || c.AdditionalChart == "" {
		errs = append(errs, fmt.Errorf("chart file names are required: %w", ErrInvalidConfig))
	}
	if c.Workbook == "" {
		errs = append(errs, fmt.Errorf("workbook file name is required: %w", ErrInvalidConfig))
	}
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %d: %w", c.DPI, ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// AnalysisChartPath returns the main dashboard path under Dir.
func (c *OutputConfig) AnalysisChartPath() string {
	return filepath.Join(c.Dir, c.AnalysisChart)
}

// AdditionalChartPath returns the secondary dashboard path under Dir.
func (c *OutputConfig) AdditionalChartPath() string {
	return filepath.Join(c.Dir, c.AdditionalChart)
}

// WorkbookPath returns the spreadsheet path under Dir.
func (c *OutputConfig) WorkbookPath() string {
	return filepath.Join(c.Dir, c.Workbook)
}
