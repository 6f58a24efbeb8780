package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall/internal/metadata"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base with a natural language query",
	Long: `Expands the query, searches the child chunk index per variant, fuses
the rankings, and prints the parent passages that cover the best hits.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("collection", "", "collection to search (default: configured collection)")
	searchCmd.Flags().Int("top-k", 0, "maximum number of results (default: configured top_k)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	collection, _ := cmd.Flags().GetString("collection")
	if collection == "" {
		collection = cfg.Collection
	}
	limit, _ := cmd.Flags().GetInt("top-k")
	if limit <= 0 {
		limit = cfg.TopK
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := eng.Search(ctx, collection, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found. Run `recall ingest` first to index documents.")
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Printf("Found %d result(s):\n\n", len(results))
	for i, r := range results {
		location := metadata.String(r.Metadata, "path")
		if location == "" {
			location = metadata.String(r.Metadata, metadata.KeySourceID)
		}

		fmt.Printf("  %d. [%.4f] %s\n", i+1, r.Score, location)
		fmt.Printf("     %s\n\n", truncate(r.Content, 200))
	}
	return nil
}
