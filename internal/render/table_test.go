package render

import (
	"reflect"
	"strings"
	"testing"
)

func TestNew_ColumnOrder(t *testing.T) {
	records := []map[string]any{
		{"title": "A", "chunk": "text a", "@search.score": 1.2, "chunk_id": "1", "url": "https://a"},
		{"title": "B", "chunk": "text b", "@search.score": 0.9, "chunk_id": "2", "url": "https://b"},
	}

	table := New([]string{"chunk_id", "title", "chunk", "url", "@search.score"}, records, Options{})

	want := []string{"title", "chunk", "@search.score", "chunk_id", "url"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("column order = %v, want %v", table.Columns, want)
	}
}

func TestNew_DropsAllEmptyColumns(t *testing.T) {
	records := []map[string]any{
		{"title": "A", "chunk": "x", "@search.score": 1.0, "caption": ""},
		{"title": "B", "chunk": "y", "@search.score": 0.5, "caption": nil},
	}

	table := New([]string{"title", "chunk", "caption", "@search.score"}, records, Options{})

	for _, col := range table.Columns {
		if col == "caption" {
			t.Errorf("all-empty column must be dropped, got columns %v", table.Columns)
		}
	}
}

func TestNew_PartiallyEmptyColumnKept(t *testing.T) {
	records := []map[string]any{
		{"title": "A", "chunk": "x", "@search.score": 1.0, "caption": "has value"},
		{"title": "B", "chunk": "y", "@search.score": 0.5, "caption": ""},
	}

	table := New([]string{"title", "chunk", "caption", "@search.score"}, records, Options{})

	found := false
	for _, col := range table.Columns {
		if col == "caption" {
			found = true
		}
	}
	if !found {
		t.Errorf("partially filled column must be kept, got columns %v", table.Columns)
	}
}

func TestNew_TruncatesChunk(t *testing.T) {
	long := strings.Repeat("x", 350)
	records := []map[string]any{
		{"title": "A", "chunk": long, "@search.score": 1.2},
	}

	table := New([]string{"title", "chunk", "@search.score"}, records, Options{})

	wantCols := []string{"title", "chunk", "@search.score"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Fatalf("column order = %v, want %v", table.Columns, wantCols)
	}

	chunk := table.Rows[0][1]
	if len(chunk) != 303 {
		t.Errorf("expected truncated chunk length 303, got %d", len(chunk))
	}
	if !strings.HasSuffix(chunk, Ellipsis) {
		t.Errorf("expected ellipsis suffix, got %q", chunk[len(chunk)-10:])
	}
}

func TestNew_NeverExceedsBudget(t *testing.T) {
	for _, n := range []int{0, 10, 299, 300, 301, 350, 1000} {
		records := []map[string]any{
			{"title": "A", "chunk": strings.Repeat("y", n), "@search.score": 1.0},
		}
		table := New([]string{"title", "chunk", "@search.score"}, records, Options{})

		chunk := table.Rows[0][1]
		if len(chunk) > DefaultTruncateBudget+len(Ellipsis) {
			t.Errorf("chunk of %d chars formatted to %d, exceeds budget", n, len(chunk))
		}
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	long := strings.Repeat("abc ", 200)

	once := Truncate(long, DefaultTruncateBudget)
	twice := Truncate(once, DefaultTruncateBudget)
	if once != twice {
		t.Errorf("truncation not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestTruncate_ShortUnchanged(t *testing.T) {
	s := "short text"
	if got := Truncate(s, DefaultTruncateBudget); got != s {
		t.Errorf("short text must be unchanged, got %q", got)
	}
}

func TestNew_UndeclaredFieldsAppended(t *testing.T) {
	records := []map[string]any{
		{"title": "A", "chunk": "x", "@search.score": 1.0, "extra": "e"},
	}

	table := New([]string{"title", "chunk", "@search.score"}, records, Options{})

	want := []string{"title", "chunk", "@search.score", "extra"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("columns = %v, want %v", table.Columns, want)
	}
}

func TestNew_EmptyRecords(t *testing.T) {
	table := New([]string{"title", "chunk"}, nil, Options{})

	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(table.Rows))
	}
	// Rendering an empty result set must not panic.
	out := table.String()
	if !strings.Contains(out, "title") {
		t.Errorf("expected header in output, got %q", out)
	}
}

func TestRender_NoRowIndices(t *testing.T) {
	records := []map[string]any{
		{"title": "First", "chunk": "alpha", "@search.score": 1.5},
		{"title": "Second", "chunk": "beta", "@search.score": 0.25},
	}
	table := New([]string{"title", "chunk", "@search.score"}, records, Options{})

	out := table.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 { // header + separator + 2 rows
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "First") {
		t.Errorf("row must start with the title cell, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "1.5") {
		t.Errorf("expected score in row, got %q", lines[2])
	}
}

func TestRender_WrapsLongCells(t *testing.T) {
	records := []map[string]any{
		{"title": "A", "chunk": strings.Repeat("word ", 40), "@search.score": 1.0},
	}
	table := New([]string{"title", "chunk", "@search.score"}, records, Options{MaxColWidth: 40})

	out := table.String()
	for _, line := range strings.Split(out, "\n") {
		for _, cell := range strings.Split(line, "  ") {
			if len(strings.TrimSpace(cell)) > 40 {
				t.Errorf("cell wider than 40 chars: %q", cell)
			}
		}
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) <= 3 {
		t.Errorf("expected wrapped row across multiple lines, got %d lines", len(lines))
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{1.2, "1.2"},
		{float64(0), "0"},
		{true, "true"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_DoesNotMutateRecords(t *testing.T) {
	long := strings.Repeat("z", 400)
	records := []map[string]any{
		{"title": "A", "chunk": long, "@search.score": 1.0},
	}

	_ = New([]string{"title", "chunk", "@search.score"}, records, Options{})

	if records[0]["chunk"] != long {
		t.Error("formatter must not mutate the underlying records")
	}
}
