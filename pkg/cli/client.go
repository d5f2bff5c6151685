package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	ragsearch "github.com/SyChell/rag-with-ai-search-upskilling"
	"github.com/SyChell/rag-with-ai-search-upskilling/internal/embedding"
)

// newSearchClient wires a ragsearch.Client from configuration: credential
// selection, optional client-side embedder, optional Redis embedding cache.
func newSearchClient(app *appContext) (*ragsearch.Client, func(), error) {
	cleanup := func() {}

	opts := []ragsearch.Option{
		ragsearch.WithEndpoint(app.cfg.Search.Endpoint),
		ragsearch.WithIndex(app.cfg.Search.Index),
		ragsearch.WithAPIKey(app.cfg.Search.APIKey),
		ragsearch.WithAPIVersion(app.cfg.Search.APIVersion),
		ragsearch.WithLogger(app.logger),
	}
	if app.cfg.Search.SemanticConfiguration != "" {
		opts = append(opts, ragsearch.WithSemanticConfiguration(app.cfg.Search.SemanticConfiguration))
	}
	if app.cfg.Search.QueryLanguage != "" {
		opts = append(opts, ragsearch.WithQueryLanguage(app.cfg.Search.QueryLanguage))
	}
	if app.cfg.Search.VectorField != "" {
		opts = append(opts, ragsearch.WithVectorField(app.cfg.Search.VectorField))
	}

	if app.cfg.Embedding.Model != "" {
		emb, closeKV, err := buildEmbedder(app)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = closeKV
		opts = append(opts, ragsearch.WithEmbedder(emb))
	}

	client, err := ragsearch.New(opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return client, cleanup, nil
}

// buildEmbedder assembles the embedder chain: OpenAI provider, optionally
// wrapped in a Redis-backed cache.
func buildEmbedder(app *appContext) (ragsearch.Embedder, func(), error) {
	var emb embedding.Embedder = embedding.NewOpenAIEmbedder(&embedding.OpenAIConfig{
		APIKey:     app.cfg.Embedding.APIKey,
		BaseURL:    app.cfg.Embedding.BaseURL,
		Model:      app.cfg.Embedding.Model,
		Dimensions: app.cfg.Embedding.Dimensions,
		Logger:     app.logger,
	})
	cleanup := func() {}

	if len(app.cfg.Cache.Addrs) > 0 {
		kv, err := embedding.NewRedisKV(embedding.RedisConfig{
			Addrs:    app.cfg.Cache.Addrs,
			Password: app.cfg.Cache.Password,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("create embedding cache: %w", err)
		}
		cleanup = kv.Close

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = kv.Ping(pingCtx)
		cancel()
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("embedding cache unreachable: %w", err)
		}

		ttl := time.Duration(app.cfg.Cache.TTLHours) * time.Hour
		emb = embedding.NewCached(emb, kv, ttl, app.logger)
		app.logger.Info("embedding cache enabled",
			zap.Strings("addrs", app.cfg.Cache.Addrs),
			zap.Duration("ttl", ttl),
		)
	}

	return &embedderAdapter{inner: emb}, cleanup, nil
}

// embedderAdapter exposes internal embedding.Embedder as ragsearch.Embedder.
type embedderAdapter struct {
	inner embedding.Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return r.Vector, nil
}
