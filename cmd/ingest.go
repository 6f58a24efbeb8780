package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall/internal/config"
	"github.com/recall-labs/recall/internal/loader"
	"github.com/recall-labs/recall/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a file or directory into the knowledge base",
	Long: `Walks the given path (default: current directory), extracts text from
every matching file, and indexes it. Use "-" to read a single document
from stdin. Re-ingesting the same files replaces their chunks instead
of duplicating them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("collection", "", "collection to ingest into (default: configured collection)")
	ingestCmd.Flags().String("source-id", "", "source id for stdin ingestion (generated if empty)")
	ingestCmd.Flags().StringSlice("include", nil, "glob patterns to include (default: configured include)")
	ingestCmd.Flags().StringSlice("exclude", nil, "extra glob patterns to exclude")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	collection, _ := cmd.Flags().GetString("collection")
	if collection == "" {
		collection = cfg.Collection
	}

	if path == "-" {
		return ingestStdin(ctx, cmd, cfg, collection)
	}

	include, _ := cmd.Flags().GetStringSlice("include")
	if len(include) == 0 {
		include = cfg.Ingest.Include
	}
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	exclude = append(cfg.Ingest.Exclude, exclude...)

	docs, err := loader.Load(loader.Config{
		RootDir:     path,
		Include:     include,
		Exclude:     exclude,
		MaxFileSize: cfg.Ingest.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	if len(docs) == 0 {
		fmt.Println("No matching documents found.")
		return nil
	}

	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	reporter := progress.NewReporter()
	reporter.Start(len(docs))

	var parents, children, failed int
	for i, doc := range docs {
		reporter.Update(i+1, doc.RelPath)

		res, err := eng.Ingest(ctx, collection, doc.Content, doc.Metadata, doc.SourceID)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", doc.RelPath, err)
			continue
		}
		parents += res.Parents
		children += res.Children
	}
	reporter.Finish()

	fmt.Printf("Ingested %d document(s) into %q: %d parent chunk(s), %d child chunk(s).\n",
		len(docs)-failed, collection, parents, children)
	if failed > 0 {
		fmt.Printf("%d document(s) failed.\n", failed)
	}
	return nil
}

// ingestStdin reads one document from stdin and indexes it.
func ingestStdin(ctx context.Context, cmd *cobra.Command, cfg *config.Config, collection string) error {
	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	sourceID, _ := cmd.Flags().GetString("source-id")

	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := eng.Ingest(ctx, collection, string(text), nil, sourceID)
	if err != nil {
		return fmt.Errorf("ingesting stdin: %w", err)
	}

	fmt.Printf("Ingested document %s into %q: %d parent chunk(s), %d child chunk(s).\n",
		res.SourceID, collection, res.Parents, res.Children)
	return nil
}
