package ragsearch

import "context"

// QueryBuilder is a fluent builder for queries.
type QueryBuilder struct {
	client *Client
	opts   QueryOptions
}

// Text sets the free-text search term.
func (b *QueryBuilder) Text(q string) *QueryBuilder {
	b.opts.Text = q
	return b
}

// Vector adds a vector leg whose embedding source is text. k <= 0 and an
// empty field select the client defaults.
func (b *QueryBuilder) Vector(text string, k int, field string) *QueryBuilder {
	b.opts.Vector = &VectorQuery{Text: text, K: k, Field: field}
	return b
}

// RawVector adds a vector leg with a precomputed embedding.
func (b *QueryBuilder) RawVector(vec []float32, k int, field string) *QueryBuilder {
	b.opts.Vector = &VectorQuery{Vector: vec, K: k, Field: field}
	return b
}

// Top caps the number of result records.
func (b *QueryBuilder) Top(n int) *QueryBuilder {
	b.opts.Top = n
	return b
}

// Select projects the returned fields.
func (b *QueryBuilder) Select(fields ...string) *QueryBuilder {
	b.opts.Select = fields
	return b
}

// Semantic enables semantic reranking. An empty configuration selects the
// client default.
func (b *QueryBuilder) Semantic(configuration string) *QueryBuilder {
	if b.opts.Semantic == nil {
		b.opts.Semantic = &SemanticOptions{}
	}
	b.opts.Semantic.Configuration = configuration
	return b
}

// Rewrites enables generative query rewriting in the given language.
// Implies semantic ranking. An empty language selects the client default.
func (b *QueryBuilder) Rewrites(language string) *QueryBuilder {
	if b.opts.Semantic == nil {
		b.opts.Semantic = &SemanticOptions{}
	}
	b.opts.Semantic.Rewrites = true
	b.opts.Semantic.Language = language
	return b
}

// Options returns the accumulated query descriptor.
func (b *QueryBuilder) Options() QueryOptions {
	return b.opts
}

// Do executes the query.
func (b *QueryBuilder) Do(ctx context.Context) (*Results, error) {
	return b.client.Run(ctx, b.opts)
}
