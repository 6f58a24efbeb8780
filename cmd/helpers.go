package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/recall-labs/recall/internal/config"
	"github.com/recall-labs/recall/internal/docstore"
	"github.com/recall-labs/recall/internal/embeddings"
	"github.com/recall-labs/recall/internal/engine"
	"github.com/recall-labs/recall/internal/expander"
	"github.com/recall-labs/recall/internal/llm"
	"github.com/recall-labs/recall/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `recall init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 768, ""), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.EmbeddingProvider)
	}
}

// createExpanderFromConfig creates the query expander, or nil when
// expansion is disabled.
func createExpanderFromConfig(cfg *config.Config) (*expander.Expander, error) {
	if !cfg.ExpandQueries {
		return nil, nil
	}
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	return expander.New(provider), nil
}

// buildEngine wires up the full retrieval stack from config. The returned
// cleanup function closes the parent store.
func buildEngine(cfg *config.Config) (*engine.Engine, func(), error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}

	provider, err := vectordb.NewPersistentProvider(filepath.Join(cfg.DataDir, "vectors"), embedder)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vector index: %w", err)
	}

	store, err := docstore.Open(filepath.Join(cfg.DataDir, "parents.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening parent store: %w", err)
	}

	opts := []engine.Option{
		engine.WithParentProfile(cfg.Chunking.ParentSize, cfg.Chunking.ParentOverlap),
		engine.WithChildProfile(cfg.Chunking.ChildSize, cfg.Chunking.ChildOverlap),
		engine.WithExpansions(cfg.Expansions),
	}

	exp, err := createExpanderFromConfig(cfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if exp != nil {
		opts = append(opts, engine.WithExpander(exp))
	}

	eng, err := engine.New(embedder, provider, store, opts...)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing parent store: %v\n", err)
		}
	}
	return eng, cleanup, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
