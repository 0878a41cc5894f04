package db

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// Query templates see the quoted sales table as {{.Table}} and three helpers:
//
//	{{month "date"}}     YYYY-MM bucket
//	{{monthnum "date"}}  two-digit month of year
//	{{round "expr" 2}}   dialect-safe ROUND
//
// Everything else (bucket boundaries, thresholds, ordering) is literal SQL.
type templateData struct {
	Table string
}

var templateCache sync.Map // dialect name + "\x00" + template text -> *template.Template

// Render expands a query template for this store's dialect and table.
func (s *Store) Render(name, text string) (string, error) {
	return RenderQuery(s.dialect, s.table, name, text)
}

// RenderQuery expands a query template without an open store.
func RenderQuery(d Dialect, table, name, text string) (string, error) {
	key := d.Name() + "\x00" + text
	cached, ok := templateCache.Load(key)
	if !ok {
		tmpl, err := template.New(name).Option("missingkey=error").Funcs(template.FuncMap{
			"month":    d.MonthBucket,
			"monthnum": d.MonthNumber,
			"round":    d.Round,
		}).Parse(text)
		if err != nil {
			return "", fmt.Errorf("parsing query %s: %w: %w", name, retailsql.ErrQueryFailed, err)
		}
		cached, _ = templateCache.LoadOrStore(key, tmpl)
	}

	var sb strings.Builder
	if err := cached.(*template.Template).Execute(&sb, templateData{Table: d.QuoteIdent(table)}); err != nil {
		return "", fmt.Errorf("rendering query %s: %w: %w", name, retailsql.ErrQueryFailed, err)
	}
	return sb.String(), nil
}
