package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ragsearch "github.com/SyChell/rag-with-ai-search-upskilling"
)

func newKeywordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keyword <query>",
		Short: "Lexical term-matching search",
		Long:  "Keyword search: the service matches terms against its inverted index and scores by text relevance.",
		Example: `  ragsearch keyword "historic hotel downtown"
  ragsearch keyword "free parking" --top 10 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], func(b *ragsearch.QueryBuilder, query string, _ int, _ string) {
				b.Text(query)
			})
		},
	}
}

func newVectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vector <query>",
		Short: "Nearest-neighbor search over embedding vectors",
		Long: `Vector search: the query is embedded and matched against the index's vector
field by nearest-neighbor similarity. No keyword parameters are sent.`,
		Example: `  ragsearch vector "places to stay near live music"
  ragsearch vector "quiet and relaxing" --k 25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], func(b *ragsearch.QueryBuilder, query string, k int, field string) {
				b.Vector(query, k, field)
			})
		},
	}
}

func newHybridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hybrid <query>",
		Short: "Fused keyword and vector search",
		Long:  "Hybrid search: the service runs both legs and fuses the rankings into one result list.",
		Example: `  ragsearch hybrid "walking distance to live music"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], func(b *ragsearch.QueryBuilder, query string, k int, field string) {
				b.Text(query).Vector(query, k, field)
			})
		},
	}
}

func newSemanticCmd() *cobra.Command {
	var configuration string

	cmd := &cobra.Command{
		Use:   "semantic <query>",
		Short: "Hybrid search with semantic reranking",
		Long: `Hybrid search followed by a service-side semantic reranking pass using a
language-understanding model. Requires a semantic configuration on the index.`,
		Example: `  ragsearch semantic "walking distance to live music"
  ragsearch semantic "pet friendly" --configuration my-semantic-config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], func(b *ragsearch.QueryBuilder, query string, k int, field string) {
				b.Text(query).Vector(query, k, field).Semantic(configuration)
			})
		},
	}
	cmd.Flags().StringVar(&configuration, "configuration", "", "Semantic configuration name (default: from config)")
	return cmd
}

func newRewriteCmd() *cobra.Command {
	var (
		configuration string
		language      string
	)

	cmd := &cobra.Command{
		Use:   "rewrite <query>",
		Short: "Hybrid + semantic search with generative query rewriting",
		Long: `Hybrid search with semantic reranking and generative query rewriting: the
service reformulates the query into alternate phrasings before retrieval.`,
		Example: `  ragsearch rewrite "walking distance to live music"
  ragsearch rewrite "cheap eats nearby" --language en-US`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], func(b *ragsearch.QueryBuilder, query string, k int, field string) {
				b.Text(query).Vector(query, k, field).Semantic(configuration).Rewrites(language)
			})
		},
	}
	cmd.Flags().StringVar(&configuration, "configuration", "", "Semantic configuration name (default: from config)")
	cmd.Flags().StringVar(&language, "language", "", "Query language for rewriting (default: from config)")
	return cmd
}

// runQuery is the shared linear flow: load config, construct client, issue
// one query, format and print results.
func runQuery(
	cmd *cobra.Command,
	query string,
	build func(b *ragsearch.QueryBuilder, query string, k int, field string),
) error {
	output := getOutputFormat(cmd)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	app, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = app.logger.Sync() }()

	client, cleanup, err := newSearchClient(app)
	if err != nil {
		return err
	}
	defer cleanup()

	top, _ := cmd.Root().PersistentFlags().GetInt("top")
	sel, _ := cmd.Root().PersistentFlags().GetStringSlice("select")
	k, _ := cmd.Root().PersistentFlags().GetInt("k")

	b := client.Query().Top(top).Select(sel...)
	build(b, query, k, app.cfg.Search.VectorField)

	results, err := b.Do(cmd.Context())
	if err != nil {
		return err
	}

	app.logger.Debug("query finished",
		zap.String("index", client.Index()),
		zap.Int("results", results.Len()),
	)

	return printResults(output, results)
}
