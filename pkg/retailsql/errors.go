package retailsql

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	results, err := runner.Run(ctx)
//	if errors.Is(err, retailsql.ErrStoreNotFound) {
//	    // run `retailsql load` first
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates the source CSV file does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrStoreNotFound indicates the SQLite store has not been created yet.
	ErrStoreNotFound = errors.New("store not found")

	// ErrConnectionFailed indicates the store could not be opened or reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrQueryFailed indicates an analytical or loader statement failed.
	ErrQueryFailed = errors.New("query failed")

	// ErrEmptyResult indicates a query that feeds a chart returned no rows.
	ErrEmptyResult = errors.New("empty result")

	// ErrRenderFailed indicates a chart could not be drawn or saved.
	ErrRenderFailed = errors.New("render failed")

	// ErrExportFailed indicates the workbook could not be written.
	ErrExportFailed = errors.New("export failed")
)

// usagePatterns are the message prefixes cobra uses for command line misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrInputNotFound), errors.Is(err, ErrStoreNotFound):
		return ExitInputMissing
	case errors.Is(err, ErrQueryFailed), errors.Is(err, ErrEmptyResult):
		return ExitQueryFailed
	case errors.Is(err, ErrRenderFailed), errors.Is(err, ErrExportFailed):
		return ExitOutputFailed
	}

	errStr := err.Error()
	for _, pattern := range usagePatterns {
		if strings.HasPrefix(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
