package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// tokenExpiryWarning is how close to expiry a fresh token may be before it is logged.
const tokenExpiryWarning = 5 * time.Minute

// openPostgres builds a database/sql handle on top of pgx for cfg, attaching the
// configured authentication. The returned release func frees resources that
// outlive the handle (the Cloud SQL dialer) and must run after the handle is closed.
// No connection is made until the first use of the handle.
func openPostgres(ctx context.Context, cfg retailsql.StoreConfig, logger retailsql.Logger) (*sql.DB, func() error, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing postgres DSN: %w: %w", retailsql.ErrInvalidConfig, err)
	}
	noop := func() error { return nil }

	switch cfg.Auth {
	case "", retailsql.AuthPassword:
		return stdlib.OpenDB(*connConfig), noop, nil

	case retailsql.AuthAWS:
		endpoint := net.JoinHostPort(connConfig.Host, strconv.Itoa(int(connConfig.Port)))
		provider, err := NewAWSIAMTokenProvider(endpoint, cfg.AWSRegion, connConfig.User)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", retailsql.ErrInvalidConfig, err)
		}
		return stdlib.OpenDB(*connConfig, stdlib.OptionBeforeConnect(tokenPassword(provider, logger))), noop, nil

	case retailsql.AuthAzure:
		provider, err := NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", retailsql.ErrConnectionFailed, err)
		}
		return stdlib.OpenDB(*connConfig, stdlib.OptionBeforeConnect(tokenPassword(provider, logger))), noop, nil

	case retailsql.AuthGoogle:
		dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Cloud SQL dialer: %w: %w", retailsql.ErrConnectionFailed, err)
		}
		instance := cfg.GoogleInstance
		connConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.Dial(ctx, instance)
		}
		logger.Verbose("Dialing Cloud SQL instance %s with IAM authentication", instance)
		return stdlib.OpenDB(*connConfig), dialer.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported auth method %q: %w", cfg.Auth, retailsql.ErrInvalidConfig)
}

// tokenPassword returns a pgx BeforeConnect hook that fetches a fresh token for
// every new connection and uses it as the password.
func tokenPassword(provider TokenProvider, logger retailsql.Logger) func(context.Context, *pgx.ConnConfig) error {
	return func(ctx context.Context, cc *pgx.ConnConfig) error {
		token, expiresOn, err := provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("acquiring token from %s: %w", provider, err)
		}
		if left := time.Until(expiresOn); left < tokenExpiryWarning {
			logger.Info("Warning: %s token expires in %v", provider, left.Round(time.Second))
		}
		logger.Verbose("Authenticating with token from %s", provider)
		cc.Password = token
		return nil
	}
}
