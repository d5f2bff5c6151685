// Package cli implements the ragsearch command line: one subcommand per
// search mode plus a demo command that walks through all of them.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SyChell/rag-with-ai-search-upskilling/internal/config"
	"github.com/SyChell/rag-with-ai-search-upskilling/internal/logger"
	"github.com/SyChell/rag-with-ai-search-upskilling/internal/metrics"
	"github.com/SyChell/rag-with-ai-search-upskilling/internal/version"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ragsearch",
		Short: "Query a managed search index with keyword, vector, hybrid, semantic, and rewrite modes",
		Long: `ragsearch demonstrates retrieval against a managed cloud search index.

All search internals (keyword scoring, vector similarity, hybrid fusion,
semantic reranking, query rewriting) run service-side; this tool builds the
request for each mode and formats the returned records.

Configuration comes from config/<env>.yaml or, when absent, from the
SEARCH_ENDPOINT, SEARCH_INDEX, and SEARCH_API_KEY environment variables.
Without an api key the client authenticates with a delegated identity token.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("env", "", "Environment name for config lookup (default: ENV or local)")
	root.PersistentFlags().StringP("output", "o", "table", "Output format: table or json")
	root.PersistentFlags().Int("top", 5, "Maximum number of results")
	root.PersistentFlags().StringSlice("select", []string{"title", "chunk"}, "Fields to return")
	root.PersistentFlags().Int("k", 50, "Nearest-neighbor count for vector queries")

	root.AddCommand(newKeywordCmd())
	root.AddCommand(newVectorCmd())
	root.AddCommand(newHybridCmd())
	root.AddCommand(newSemanticCmd())
	root.AddCommand(newRewriteCmd())
	root.AddCommand(newDemoCmd())

	return root
}

// appContext bundles what every command needs after startup.
type appContext struct {
	cfg    config.Config
	logger *zap.Logger
}

// setup loads configuration and the logger. A missing endpoint or index is a
// fatal startup error; everything else surfaces on first use.
func setup(cmd *cobra.Command) (*appContext, error) {
	env, _ := cmd.Root().PersistentFlags().GetString("env")
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	metrics.Register()

	return &appContext{cfg: cfg, logger: log}, nil
}
