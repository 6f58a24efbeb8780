package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (RECALL_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: RECALL_PROVIDER -> provider, etc.
	if err := k.Load(env.Provider("RECALL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "RECALL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validChatProviders is the set of recognized expansion provider values.
var validChatProviders = map[ProviderType]bool{
	ProviderAnthropic: true,
	ProviderOpenAI:    true,
	ProviderOllama:    true,
}

// validEmbeddingProviders is the set of recognized embedding provider values.
var validEmbeddingProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.EmbeddingProvider == "" {
		return fmt.Errorf("embedding_provider is required")
	}
	if !validEmbeddingProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be one of openai, ollama", c.EmbeddingProvider)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("embedding_model is required")
	}

	if c.ExpandQueries {
		if c.Provider == "" {
			return fmt.Errorf("provider is required when expand_queries is enabled")
		}
		if !validChatProviders[c.Provider] {
			return fmt.Errorf("invalid provider %q: must be one of anthropic, openai, ollama", c.Provider)
		}
		if c.Model == "" {
			return fmt.Errorf("model is required when expand_queries is enabled")
		}
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Collection == "" {
		return fmt.Errorf("collection is required")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive")
	}
	if c.Expansions < 0 {
		return fmt.Errorf("expansions must be non-negative")
	}

	ch := c.Chunking
	if ch.ParentSize <= 0 || ch.ChildSize <= 0 {
		return fmt.Errorf("chunk sizes must be positive")
	}
	if ch.ChildSize > ch.ParentSize {
		return fmt.Errorf("child chunk size must not exceed parent chunk size")
	}
	if ch.ParentOverlap < 0 || ch.ChildOverlap < 0 {
		return fmt.Errorf("chunk overlaps must be non-negative")
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
