// Package db owns the relational store that holds the sales table.
//
// Two drivers are supported behind one database/sql handle:
//   - sqlite (modernc.org/sqlite): a single file, the default
//   - postgres (pgx stdlib): an existing server reached through a DSN
//
// Each stage opens the store once, runs its statements sequentially on a single
// connection, and closes it. Dialect differences (DDL types, identifier quoting,
// placeholders, month bucketing and rounding) live in Dialect so the analytical
// SQL is written once.
package db
