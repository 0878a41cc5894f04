// Package report renders pipeline output for humans: section banners, headings
// and frame.Table results drawn with lipgloss tables.
package report
