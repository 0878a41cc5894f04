package report

import (
	"os"

	"golang.org/x/term"
)

// DetectStyled reports whether stdout should get styled tables.
//
// Returns false if:
//   - NO_COLOR is set
//   - CI is set
//   - stdout is not a terminal (redirected to a file or pipe)
func DetectStyled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
