package loader

import "github.com/vvka-141/retailsql/internal/report"

// Print writes the load summary: record count, table schema, stored count, sample rows and location.
func (r *Report) Print(p *report.Printer) {
	p.Line("Loaded %d records from CSV", r.RowsRead)
	p.Line("")
	p.Line("Created table with columns:")
	for _, c := range r.Columns {
		p.Line("  - %s: %s", c.Name, c.Type)
	}
	p.Line("")
	p.Line("Records imported: %d", r.RowsStored)
	p.Line("")
	p.Line("Sample rows:")
	if r.Sample != nil {
		p.Table(r.Sample)
	}
	p.Line("")
	p.Line("Store saved: %s", r.StorePath)
}
