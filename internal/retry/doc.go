// Package retry re-attempts store operations that fail for transient reasons.
//
// Only opening the store is retried: a PostgreSQL server that is still starting
// or a SQLite file briefly locked by another process. Analytical queries are never
// retried; a failing query is reported as-is.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewStoreErrorClassifier(), retry.StoreBackoff())
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
package retry
