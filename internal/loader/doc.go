// Package loader reads the retail-sales CSV into an Arrow record and replaces
// the sales table in the store with it.
//
// Column kinds are inferred from every value in the file, so a single decimal in
// an otherwise integral column makes the whole column REAL. Empty cells load as
// NULL. Row-level consistency (total_amount = quantity * price_per_unit) is not
// checked.
package loader
