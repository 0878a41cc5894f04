package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/retailsql/internal/frame"
)

// Printer writes section banners and result tables to the console.
// Styled output uses colored rounded borders; plain output is Markdown-style and
// safe to redirect.
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, styled bool) *Printer {
	return &Printer{out: out, styled: styled}
}

// Banner prints a title between two separator lines.
func (p *Printer) Banner(title string) {
	sep := strings.Repeat("=", bannerWidth)
	if p.styled {
		title = bannerStyle.Render(title)
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n%s\n", sep, title, sep)
}

// Heading prints a blank line and a heading. The text is printed verbatim.
func (p *Printer) Heading(text string) {
	if p.styled {
		text = headingStyle.Render(text)
	}
	fmt.Fprintf(p.out, "\n%s\n", text)
}

// Headingf formats a heading and prints it like Heading.
func (p *Printer) Headingf(format string, args ...any) {
	p.Heading(fmt.Sprintf(format, args...))
}

// Line prints one line of text.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Note prints a de-emphasised line.
func (p *Printer) Note(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if p.styled {
		text = noteStyle.Render(text)
	}
	fmt.Fprintln(p.out, text)
}

// Table prints t with a header row. An empty result prints the header and a note.
func (p *Printer) Table(t *frame.Table) {
	fmt.Fprintln(p.out, p.renderTable(t))
	if t.Len() == 0 {
		p.Note("(no rows)")
	}
}

func (p *Printer) renderTable(t *frame.Table) string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c
		if c == "" {
			headers[i] = " "
		}
	}

	numeric := make([]bool, len(t.Columns))
	for c := range t.Columns {
		numeric[c] = numericColumn(t, c)
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = frame.FormatValue(v)
		}
		rows[i] = cells
	}

	tbl := table.New().Headers(headers...).Rows(rows...)
	if p.styled {
		tbl = tbl.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerCellStyle
				case numeric[col]:
					return numericCellStyle
				default:
					return cellStyle
				}
			})
	} else {
		tbl = tbl.
			Border(lipgloss.MarkdownBorder()).
			BorderTop(false).
			BorderBottom(false).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row != table.HeaderRow && numeric[col] {
					return numericCellStyle
				}
				return cellStyle
			})
	}
	return tbl.String()
}

// numericColumn reports whether every non-NULL cell of column c is a number.
func numericColumn(t *frame.Table, c int) bool {
	seen := false
	for _, row := range t.Rows {
		if row[c] == nil {
			continue
		}
		if _, ok := frame.ToFloat64(row[c]); !ok {
			return false
		}
		if _, isBool := row[c].(bool); isBool {
			return false
		}
		seen = true
	}
	return seen
}
