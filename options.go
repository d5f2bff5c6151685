package ragsearch

import (
	"net/http"

	"go.uber.org/zap"
)

// Defaults applied when the corresponding option is not given.
const (
	defaultAPIVersion    = "2025-05-01-preview"
	defaultQueryLanguage = "en-US"
	defaultVectorField   = "text_vector"
	defaultNeighborCount = 50
)

type clientConfig struct {
	endpoint      string
	index         string
	apiKey        string
	tokenProvider TokenProvider
	apiVersion    string
	httpClient    *http.Client
	embedder      Embedder
	logger        *zap.Logger

	semanticConfiguration string
	queryLanguage         string
	vectorField           string
}

// Option configures the Client.
type Option func(*clientConfig)

// WithEndpoint sets the search service endpoint URL. Required.
func WithEndpoint(endpoint string) Option {
	return func(c *clientConfig) { c.endpoint = endpoint }
}

// WithIndex sets the index name queries are issued against. Required.
func WithIndex(index string) Option {
	return func(c *clientConfig) { c.index = index }
}

// WithAPIKey sets a static admin key. When absent the client falls back to
// delegated-identity authentication.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) { c.apiKey = key }
}

// WithTokenProvider sets the delegated-identity token source used when no
// api key is configured.
func WithTokenProvider(provider TokenProvider) Option {
	return func(c *clientConfig) { c.tokenProvider = provider }
}

// WithAPIVersion overrides the service API version.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) { c.apiVersion = version }
}

// WithHTTPClient overrides the HTTP client used for service calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// WithEmbedder sets a client-side query embedder. Vector queries then send a
// raw vector instead of asking the service to vectorize the text.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) { c.embedder = e }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithSemanticConfiguration sets the default semantic configuration name used
// when a semantic query does not name one.
func WithSemanticConfiguration(name string) Option {
	return func(c *clientConfig) { c.semanticConfiguration = name }
}

// WithQueryLanguage sets the default query language for rewrite queries.
func WithQueryLanguage(lang string) Option {
	return func(c *clientConfig) { c.queryLanguage = lang }
}

// WithVectorField sets the default target vector field for vector queries.
func WithVectorField(field string) Option {
	return func(c *clientConfig) { c.vectorField = field }
}
