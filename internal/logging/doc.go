// Package logging provides concrete implementations of the retailsql.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed diagnostic lines to stderr (or any io.Writer)
//   - NewNullLogger: a ConsoleLogger writing to io.Discard
//
// Logs never go to stdout: stdout carries the result tables and reports.
package logging
