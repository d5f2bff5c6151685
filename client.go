// Package ragsearch is a thin client for a managed cloud search service.
// It forwards keyword, vector, hybrid, semantic, and rewrite queries to the
// remote service and formats the returned records for display; all retrieval,
// ranking fusion, semantic reranking, and query rewriting happen service-side.
package ragsearch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SyChell/rag-with-ai-search-upskilling/internal/credential"
	"github.com/SyChell/rag-with-ai-search-upskilling/internal/transport/rest"
)

// Document is one result record: field name to value, schema owned by the
// remote index. The relevance score is present under ScoreField.
type Document = rest.Document

// ScoreField is the relevance score key attached to every result record.
const ScoreField = rest.ScoreField

// ServiceError is a non-2xx response from the search service.
type ServiceError = rest.ServiceError

// TokenProvider supplies a bearer token for delegated-identity authentication.
type TokenProvider func(ctx context.Context) (string, error)

// Embedder converts query text into an embedding vector. Optional: without
// one, vector queries are vectorized by the service.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is the SDK entry point, bound to (endpoint, index, credential).
// Read-only after construction; one network round trip per query.
type Client struct {
	index    string
	rest     *rest.Client
	embedder Embedder
	logger   *zap.Logger

	semanticConfiguration string
	queryLanguage         string
	vectorField           string
}

// New creates a Client. Endpoint and index are required; the credential is
// resolved once: static api key if given, otherwise a delegated-identity
// token provider (explicit or ambient).
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		apiVersion:    defaultAPIVersion,
		queryLanguage: defaultQueryLanguage,
		vectorField:   defaultVectorField,
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.endpoint == "" {
		return nil, errors.New("ragsearch: endpoint required (use WithEndpoint)")
	}
	if cfg.index == "" {
		return nil, errors.New("ragsearch: index required (use WithIndex)")
	}

	var provider credential.TokenProvider
	if cfg.tokenProvider != nil {
		provider = credential.TokenProvider(cfg.tokenProvider)
	}
	cred, err := credential.Resolve(cfg.apiKey, provider)
	if err != nil {
		return nil, fmt.Errorf("ragsearch: %w", err)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		index: cfg.index,
		rest: rest.NewClient(rest.Config{
			Endpoint:   cfg.endpoint,
			Index:      cfg.index,
			APIVersion: cfg.apiVersion,
			Credential: cred,
			HTTPClient: cfg.httpClient,
			Logger:     logger,
		}),
		embedder:              cfg.embedder,
		logger:                logger,
		semanticConfiguration: cfg.semanticConfiguration,
		queryLanguage:         cfg.queryLanguage,
		vectorField:           cfg.vectorField,
	}, nil
}

// Index returns the index name the client is bound to.
func (c *Client) Index() string {
	return c.index
}

// Query starts a fluent query builder.
func (c *Client) Query() *QueryBuilder {
	return &QueryBuilder{client: c}
}

// Run executes one query descriptor and materializes the result records in
// service order. Remote failures are returned as-is; there is no retry.
func (c *Client) Run(ctx context.Context, q QueryOptions) (*Results, error) {
	req, err := c.buildRequest(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	docs, err := c.rest.SearchAll(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	columns := make([]string, 0, len(q.Select)+1)
	columns = append(columns, q.Select...)
	columns = append(columns, ScoreField)

	return &Results{Documents: docs, Columns: columns}, nil
}

// buildRequest maps the descriptor onto the wire request. When the client has
// an embedder and the vector leg carries only source text, the query is
// vectorized client-side and sent as a raw vector.
func (c *Client) buildRequest(ctx context.Context, q *QueryOptions) (*rest.SearchRequest, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	req := &rest.SearchRequest{
		Search: q.Text,
		Top:    q.Top,
		Select: joinFields(q.Select),
	}

	if q.Vector != nil {
		vq, err := c.buildVectorQuery(ctx, q.Vector)
		if err != nil {
			return nil, err
		}
		req.VectorQueries = []rest.VectorQuery{vq}
	}

	if q.Semantic != nil {
		req.QueryType = rest.QueryTypeSemantic
		req.SemanticConfiguration = q.Semantic.Configuration
		if req.SemanticConfiguration == "" {
			req.SemanticConfiguration = c.semanticConfiguration
		}
		if req.SemanticConfiguration == "" {
			return nil, errors.New("semantic configuration name required")
		}
		if q.Semantic.Rewrites {
			req.QueryRewrites = rest.QueryRewritesGenerative
			req.QueryLanguage = q.Semantic.Language
			if req.QueryLanguage == "" {
				req.QueryLanguage = c.queryLanguage
			}
		}
	}

	return req, nil
}

func (c *Client) buildVectorQuery(ctx context.Context, v *VectorQuery) (rest.VectorQuery, error) {
	field := v.Field
	if field == "" {
		field = c.vectorField
	}
	k := v.K
	if k <= 0 {
		k = defaultNeighborCount
	}

	if len(v.Vector) > 0 {
		return rest.VectorQuery{
			Kind:   rest.VectorKindRaw,
			Vector: v.Vector,
			K:      k,
			Fields: field,
		}, nil
	}

	if c.embedder != nil {
		vec, err := c.embedder.Embed(ctx, v.Text)
		if err != nil {
			return rest.VectorQuery{}, fmt.Errorf("vectorize query: %w", err)
		}
		return rest.VectorQuery{
			Kind:   rest.VectorKindRaw,
			Vector: vec,
			K:      k,
			Fields: field,
		}, nil
	}

	// No embedder: the service vectorizes the text itself.
	return rest.VectorQuery{
		Kind:   rest.VectorKindText,
		Text:   v.Text,
		K:      k,
		Fields: field,
	}, nil
}
