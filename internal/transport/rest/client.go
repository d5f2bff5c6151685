// Package rest implements the wire client for the managed search service:
// one POST per query against the index documents search endpoint, with
// key or bearer authentication and continuation-token pagination.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SyChell/rag-with-ai-search-upskilling/internal/credential"
	"github.com/SyChell/rag-with-ai-search-upskilling/internal/metrics"
)

const defaultTimeout = 30 * time.Second

// Config holds the wire client settings.
type Config struct {
	Endpoint   string
	Index      string
	APIVersion string
	Credential credential.Credential
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client issues search requests against a single index. Read-only after
// construction; one network round trip per Search call.
type Client struct {
	searchURL string
	cred      credential.Credential
	http      *http.Client
	logger    *zap.Logger
}

// NewClient creates a wire client bound to (endpoint, index, credential).
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	searchURL := fmt.Sprintf(
		"%s/indexes/%s/docs/search?api-version=%s",
		endpoint, url.PathEscape(cfg.Index), url.QueryEscape(cfg.APIVersion),
	)

	return &Client{
		searchURL: searchURL,
		cred:      cfg.Credential,
		http:      httpClient,
		logger:    logger,
	}
}

// Search executes one search round trip and decodes the response.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	mode := req.Mode()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-ms-client-request-id", requestID)

	if err := c.cred.Apply(httpReq); err != nil {
		return nil, fmt.Errorf("apply credential: %w", err)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		c.logger.Warn("search request failed",
			zap.String("mode", mode),
			zap.Int("status", httpResp.StatusCode),
			zap.String("request_id", requestID),
		)
		return nil, newServiceError(httpResp.StatusCode, requestID, respBody)
	}

	var resp SearchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(mode, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(mode).Observe(duration.Seconds())
	metrics.SearchResultsReturned.WithLabelValues(mode).Observe(float64(len(resp.Value)))

	c.logger.Debug("search request",
		zap.String("mode", mode),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("latency", duration),
		zap.Int("results", len(resp.Value)),
		zap.String("request_id", requestID),
	)

	return &resp, nil
}

// SearchAll executes a search and follows continuation tokens until the
// service stops paginating or req.Top records have been collected.
// A fresh call re-executes the remote query from the first page.
func (c *Client) SearchAll(ctx context.Context, req *SearchRequest) ([]Document, error) {
	var docs []Document

	page := req
	for {
		resp, err := c.Search(ctx, page)
		if err != nil {
			return nil, err
		}
		docs = append(docs, resp.Value...)

		if req.Top > 0 && len(docs) >= req.Top {
			return docs[:req.Top], nil
		}
		if resp.NextPageParameters == nil {
			return docs, nil
		}
		page = resp.NextPageParameters
	}
}
