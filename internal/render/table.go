// Package render turns search result records into a display table:
// empty columns dropped, the chunk field truncated for readability,
// title/chunk/score pulled to the front, fixed-width output without
// row indices. Display-only; input records are never mutated.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Defaults matching the demo index layout.
const (
	DefaultTruncateField  = "chunk"
	DefaultTruncateBudget = 300
	Ellipsis              = "..."

	defaultMaxColWidth = 80
)

// DefaultFrontColumns are pulled to the front of the table, in this order.
var DefaultFrontColumns = []string{"title", "chunk", "@search.score"}

// Options configures table construction. Zero values select the defaults.
type Options struct {
	FrontColumns   []string
	TruncateField  string
	TruncateBudget int
	MaxColWidth    int
}

func (o *Options) applyDefaults() {
	if o.FrontColumns == nil {
		o.FrontColumns = DefaultFrontColumns
	}
	if o.TruncateField == "" {
		o.TruncateField = DefaultTruncateField
	}
	if o.TruncateBudget <= 0 {
		o.TruncateBudget = DefaultTruncateBudget
	}
	if o.MaxColWidth <= 0 {
		o.MaxColWidth = defaultMaxColWidth
	}
}

// Table is a display-only projection of a result set.
type Table struct {
	Columns []string
	Rows    [][]string

	maxColWidth int
}

// New builds a table from records. columns gives the field order (the query's
// projection list); fields present in records but not listed are appended in
// the order first seen. An empty record set yields an empty table.
func New(columns []string, records []map[string]any, opts Options) *Table {
	opts.applyDefaults()

	cols := collectColumns(columns, records)

	// Stringify all cells up front so emptiness checks see display values.
	cells := make([]map[string]string, len(records))
	for i, rec := range records {
		row := make(map[string]string, len(rec))
		for _, col := range cols {
			s := formatValue(rec[col])
			if col == opts.TruncateField {
				s = Truncate(s, opts.TruncateBudget)
			}
			row[col] = s
		}
		cells[i] = row
	}

	cols = dropEmptyColumns(cols, cells)
	cols = reorderFront(cols, opts.FrontColumns)

	rows := make([][]string, len(cells))
	for i, row := range cells {
		out := make([]string, len(cols))
		for j, col := range cols {
			out[j] = row[col]
		}
		rows[i] = out
	}

	return &Table{Columns: cols, Rows: rows, maxColWidth: opts.MaxColWidth}
}

// Truncate cuts s to at most budget characters plus an ellipsis marker.
// Applying it twice yields the same string.
func Truncate(s string, budget int) string {
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	return string([]rune(s)[:budget]) + Ellipsis
}

// Render writes the table to w: header, separator, then one line per wrapped
// row segment. Left-aligned, no row indices.
func (t *Table) Render(w io.Writer) error {
	if len(t.Columns) == 0 {
		return nil
	}

	widths := t.columnWidths()

	if err := writeLine(w, t.Columns, widths); err != nil {
		return err
	}
	sep := make([]string, len(t.Columns))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if err := writeLine(w, sep, widths); err != nil {
		return err
	}

	for _, row := range t.Rows {
		for _, segment := range wrapRow(row, widths) {
			if err := writeLine(w, segment, widths); err != nil {
				return err
			}
		}
	}
	return nil
}

// String renders the table to a string.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > t.maxColWidth {
			widths[i] = t.maxColWidth
		}
	}
	return widths
}

// collectColumns returns the declared columns followed by undeclared fields
// in first-seen order across records.
func collectColumns(declared []string, records []map[string]any) []string {
	cols := make([]string, 0, len(declared))
	seen := make(map[string]bool, len(declared))
	for _, c := range declared {
		if !seen[c] {
			cols = append(cols, c)
			seen[c] = true
		}
	}
	for _, rec := range records {
		extras := make([]string, 0, len(rec))
		for k := range rec {
			if !seen[k] {
				extras = append(extras, k)
				seen[k] = true
			}
		}
		// Map iteration order is random; keep undeclared extras deterministic.
		sort.Strings(extras)
		cols = append(cols, extras...)
	}
	return cols
}

func dropEmptyColumns(cols []string, cells []map[string]string) []string {
	if len(cells) == 0 {
		return cols
	}
	kept := cols[:0:0]
	for _, col := range cols {
		empty := true
		for _, row := range cells {
			if row[col] != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, col)
		}
	}
	return kept
}

// reorderFront moves the listed columns (those present) to the front,
// preserving the original relative order of the rest.
func reorderFront(cols []string, front []string) []string {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}

	out := make([]string, 0, len(cols))
	moved := make(map[string]bool, len(front))
	for _, c := range front {
		if present[c] {
			out = append(out, c)
			moved[c] = true
		}
	}
	for _, c := range cols {
		if !moved[c] {
			out = append(out, c)
		}
	}
	return out
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// wrapRow splits each cell on its column width and returns the row as one or
// more aligned line segments.
func wrapRow(row []string, widths []int) [][]string {
	wrapped := make([][]string, len(row))
	height := 1
	for i, cell := range row {
		wrapped[i] = wrapText(cell, widths[i])
		if len(wrapped[i]) > height {
			height = len(wrapped[i])
		}
	}

	segments := make([][]string, height)
	for line := 0; line < height; line++ {
		seg := make([]string, len(row))
		for i := range row {
			if line < len(wrapped[i]) {
				seg[i] = wrapped[i][line]
			}
		}
		segments[line] = seg
	}
	return segments
}

// wrapText breaks s into lines of at most width characters, preferring word
// boundaries and hard-breaking words longer than the width.
func wrapText(s string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return []string{s}
	}

	var lines []string
	var line strings.Builder
	lineLen := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineLen = 0
	}

	for _, word := range strings.Fields(s) {
		wordLen := utf8.RuneCountInString(word)

		if lineLen > 0 && lineLen+1+wordLen > width {
			flush()
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}

		// Hard-break words longer than the column width.
		for wordLen > width {
			runes := []rune(word)
			line.WriteString(string(runes[:width-lineLen]))
			word = string(runes[width-lineLen:])
			wordLen = utf8.RuneCountInString(word)
			flush()
		}
		line.WriteString(word)
		lineLen += wordLen
	}
	if lineLen > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func writeLine(w io.Writer, cells []string, widths []int) error {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(cell)
		if pad := widths[i] - utf8.RuneCountInString(cell); pad > 0 && i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
