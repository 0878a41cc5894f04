package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// StoreErrorClassifier recognises transient failures from both store drivers.
type StoreErrorClassifier struct{}

// NewStoreErrorClassifier creates a new classifier.
func NewStoreErrorClassifier() *StoreErrorClassifier {
	return &StoreErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *StoreErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientPgCode(pgErr.Code)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}

	return isNetworkError(err) || hasTransientMessage(err)
}

// isTransientPgCode covers the PostgreSQL error classes that clear up on their own:
// 08 connection exception, 53 insufficient resources, 57 operator intervention,
// plus serialization failures, deadlocks and lock timeouts.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
func isTransientPgCode(code string) bool {
	for _, class := range []string{"08", "53", "57"} {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	switch code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
			errors.Is(opErr.Err, syscall.ECONNRESET) ||
			errors.Is(opErr.Err, syscall.ENETUNREACH) ||
			errors.Is(opErr.Err, syscall.EHOSTUNREACH)
	}

	return false
}

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"the database system is starting up",
	"database is locked",
}

func hasTransientMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
