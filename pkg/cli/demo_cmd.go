package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ragsearch "github.com/SyChell/rag-with-ai-search-upskilling"
)

func newDemoCmd() *cobra.Command {
	var (
		query       string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run all five search modes in sequence",
		Long: `Walks through keyword, vector, hybrid, hybrid+semantic, and
hybrid+semantic+rewrite search with the same query, printing each result
table. The flow is linear and synchronous: one query, one table, next mode.`,
		Example: `  ragsearch demo
  ragsearch demo --query "walking distance to live music"
  ragsearch demo --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, query, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&query, "query", "walking distance to live music", "Query used for every mode")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus /metrics on this address while the demo runs")
	return cmd
}

func runDemo(cmd *cobra.Command, query, metricsAddr string) error {
	output := getOutputFormat(cmd)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	app, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = app.logger.Sync() }()

	if metricsAddr != "" {
		stop, err := serveMetrics(metricsAddr, app.logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	client, cleanup, err := newSearchClient(app)
	if err != nil {
		return err
	}
	defer cleanup()

	top, _ := cmd.Root().PersistentFlags().GetInt("top")
	sel, _ := cmd.Root().PersistentFlags().GetStringSlice("select")
	k, _ := cmd.Root().PersistentFlags().GetInt("k")
	field := app.cfg.Search.VectorField

	steps := []struct {
		name  string
		build func(b *ragsearch.QueryBuilder)
	}{
		{"Keyword search", func(b *ragsearch.QueryBuilder) {
			b.Text(query)
		}},
		{"Vector search", func(b *ragsearch.QueryBuilder) {
			b.Vector(query, k, field)
		}},
		{"Hybrid search", func(b *ragsearch.QueryBuilder) {
			b.Text(query).Vector(query, k, field)
		}},
		{"Hybrid + semantic ranking", func(b *ragsearch.QueryBuilder) {
			b.Text(query).Vector(query, k, field).Semantic("")
		}},
		{"Hybrid + semantic ranking + query rewriting", func(b *ragsearch.QueryBuilder) {
			b.Text(query).Vector(query, k, field).Semantic("").Rewrites("")
		}},
	}

	for _, step := range steps {
		fmt.Printf("=== %s: %q ===\n", step.name, query)

		b := client.Query().Top(top).Select(sel...)
		step.build(b)

		results, err := b.Do(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		if err := printResults(output, results); err != nil {
			return err
		}
		fmt.Println()
	}

	return nil
}

// serveMetrics exposes Prometheus metrics on a chi router for the lifetime
// of the demo. Returns a stop function.
func serveMetrics(addr string, logger *zap.Logger) (func(), error) {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
