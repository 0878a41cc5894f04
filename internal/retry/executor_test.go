package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyPing fails with a transient error until failUntil, then returns final.
type flakyPing struct {
	calls     int
	failUntil int
	final     error
}

func (f *flakyPing) ping(ctx context.Context) error {
	f.calls++
	if f.calls < f.failUntil {
		return &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"}
	}
	return f.final
}

func fastBackoff(attempts int) *Backoff {
	return &Backoff{Initial: time.Millisecond, Attempts: attempts}
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	op := &flakyPing{failUntil: 1}
	err := NewExecutor(NewStoreErrorClassifier(), fastBackoff(3)).Execute(context.Background(), op.ping)

	require.NoError(t, err)
	assert.Equal(t, 1, op.calls)
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	var retries []int
	executor := NewExecutor(NewStoreErrorClassifier(), fastBackoff(5)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			retries = append(retries, attempt)
		})

	op := &flakyPing{failUntil: 3}
	err := executor.Execute(context.Background(), op.ping)

	require.NoError(t, err)
	assert.Equal(t, 3, op.calls)
	assert.Equal(t, []int{0, 1}, retries)
}

func TestExecutor_FatalErrorIsNotRetried(t *testing.T) {
	fatal := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	calls := 0
	err := NewExecutor(NewStoreErrorClassifier(), fastBackoff(5)).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	op := &flakyPing{failUntil: 100}
	err := NewExecutor(NewStoreErrorClassifier(), fastBackoff(2)).Execute(context.Background(), op.ping)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, 3, op.calls, "initial attempt plus two retries")
}

func TestExecutor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	executor := NewExecutor(NewStoreErrorClassifier(), fastBackoff(-1)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			if attempt == 1 {
				cancel()
			}
		})

	op := &flakyPing{failUntil: 1000}
	err := executor.Execute(ctx, op.ping)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewStoreErrorClassifier(), nil) })
}
