package main

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// TestMain_PanicExitCode re-runs the test binary as the CLI with the panic hook
// enabled and checks the process exit status.
func TestMain_PanicExitCode(t *testing.T) {
	if os.Getenv("RETAILSQL_TEST_PANIC") == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMain_PanicExitCode")
	cmd.Env = append(os.Environ(), "RETAILSQL_TEST_PANIC=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected process to exit with an error, got %v", err)
	}
	if got := exitErr.ExitCode(); got != retailsql.ExitPanic {
		t.Errorf("exit code = %d, want %d", got, retailsql.ExitPanic)
	}
}
