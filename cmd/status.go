package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection statistics and readiness",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().String("collection", "", "collection to inspect (default: configured collection)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	collection, _ := cmd.Flags().GetString("collection")
	if collection == "" {
		collection = cfg.Collection
	}

	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ready := "ready"
	if err := eng.Ready(ctx); err != nil {
		ready = fmt.Sprintf("not ready: %v", err)
	}

	parents, children, err := eng.Stats(ctx, collection)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	fmt.Printf("Collection:    %s\n", collection)
	fmt.Printf("Embeddings:    %s (%s)\n", cfg.EmbeddingProvider, cfg.EmbeddingModel)
	fmt.Printf("Status:        %s\n", ready)
	fmt.Printf("Parent chunks: %d\n", parents)
	fmt.Printf("Child chunks:  %d\n", children)
	return nil
}
