package ragsearch

import (
	"errors"
	"strings"
)

// QueryOptions is the single query descriptor covering all search modes.
// The populated sub-fields determine the shape:
//
//	Text only                     keyword search
//	Vector only                   vector search
//	Text + Vector                 hybrid search
//	... + Semantic                hybrid with semantic reranking
//	... + Semantic.Rewrites       hybrid with semantic reranking and query rewriting
type QueryOptions struct {
	// Text is the free-text search term. Empty for pure vector search.
	Text string

	// Vector is the optional vector leg of the query.
	Vector *VectorQuery

	// Top caps the number of result records.
	Top int

	// Select projects the returned fields.
	Select []string

	// Semantic enables semantic reranking (and optionally query rewriting).
	Semantic *SemanticOptions
}

// VectorQuery describes the vector leg: the embedding source text or a
// precomputed vector, the neighbor count, and the target vector field.
type VectorQuery struct {
	Text   string
	Vector []float32
	K      int
	Field  string
}

// SemanticOptions configures semantic reranking and query rewriting.
// Zero-valued Configuration and Language fall back to the client defaults.
type SemanticOptions struct {
	Configuration string
	Rewrites      bool
	Language      string
}

func (q *QueryOptions) validate() error {
	if q.Text == "" && q.Vector == nil {
		return errors.New("query requires a text term or a vector")
	}
	if q.Vector != nil && q.Vector.Text == "" && len(q.Vector.Vector) == 0 {
		return errors.New("vector query requires source text or a precomputed vector")
	}
	if q.Semantic != nil && q.Text == "" {
		return errors.New("semantic ranking requires a text term")
	}
	return nil
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}
