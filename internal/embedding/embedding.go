// Package embedding provides optional client-side query vectorization for
// vector search requests, with an OpenAI-compatible provider and a
// Redis-backed cache decorator. When unused, vector queries are vectorized
// by the search service itself.
package embedding

import (
	"context"
	"errors"
)

// Result is the outcome of one embedding call.
type Result struct {
	Vector       []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder converts query text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (Result, error)
}

// ErrProvider marks failures of the remote embedding provider.
var ErrProvider = errors.New("embedding provider error")
