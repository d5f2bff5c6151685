package ragsearch

import (
	"io"

	"github.com/SyChell/rag-with-ai-search-upskilling/internal/render"
)

// Results holds the materialized records of one query, in service order,
// plus the column order derived from the query's field projection.
type Results struct {
	Documents []Document
	Columns   []string
}

// Len returns the number of result records.
func (r *Results) Len() int {
	return len(r.Documents)
}

// RenderTable writes the results as a display table: all-empty columns
// dropped, the chunk field truncated, title/chunk/score first, no row
// indices. The underlying records are never mutated.
func (r *Results) RenderTable(w io.Writer) error {
	records := make([]map[string]any, len(r.Documents))
	for i, d := range r.Documents {
		records[i] = d
	}
	return render.New(r.Columns, records, render.Options{}).Render(w)
}

// TableString renders the display table to a string.
func (r *Results) TableString() string {
	records := make([]map[string]any, len(r.Documents))
	for i, d := range r.Documents {
		records[i] = d
	}
	return render.New(r.Columns, records, render.Options{}).String()
}
