package testinfra

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "retailsql"

	// TestDSNEnv points integration tests at an existing server instead of a container.
	TestDSNEnv = "RETAILSQL_TEST_DSN"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

// RequirePostgres returns a DSN for a PostgreSQL server, skipping the test in
// -short mode or when neither $RETAILSQL_TEST_DSN nor Docker is available.
// A container started here is terminated when the test finishes.
func RequirePostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	if dsn := os.Getenv(TestDSNEnv); dsn != "" {
		return dsn
	}

	ctx := context.Background()
	ctr, err := StartPostgres(ctx)
	if err != nil {
		t.Skipf("PostgreSQL not available (set %s or start Docker): %v", TestDSNEnv, err)
	}
	t.Cleanup(func() {
		ctr.Terminate(context.Background()) //nolint:errcheck
	})
	return ctr.ConnString
}
