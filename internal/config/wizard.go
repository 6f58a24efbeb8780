package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .recall.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to recall! Let's configure your knowledge base.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Embedding provider.
	embedPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{"openai", "ollama"},
	}
	_, embedStr, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding provider selection: %w", err)
	}
	cfg.EmbeddingProvider = ProviderType(embedStr)
	cfg.EmbeddingModel = DefaultEmbeddingModel(cfg.EmbeddingProvider)

	// 2. Query expansion on/off.
	expandPrompt := promptui.Select{
		Label: "Enable LLM query expansion",
		Items: []string{"yes", "no"},
	}
	expandIdx, _, err := expandPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("expansion selection: %w", err)
	}
	cfg.ExpandQueries = expandIdx == 0

	// 3. Expansion provider, only when enabled.
	if cfg.ExpandQueries {
		providerPrompt := promptui.Select{
			Label: "Select LLM provider for query expansion",
			Items: []string{"openai", "anthropic", "ollama"},
		}
		_, providerStr, err := providerPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("provider selection: %w", err)
		}
		cfg.Provider = ProviderType(providerStr)
		cfg.Model = DefaultChatModel(cfg.Provider)
	}

	// 4. Default collection name.
	collectionPrompt := promptui.Prompt{
		Label:   "Default collection name",
		Default: cfg.Collection,
	}
	collection, err := collectionPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("collection name: %w", err)
	}
	cfg.Collection = collection

	// 5. Data directory.
	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	dataDir, err := dataDirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 6. Extra exclude patterns for ingestion.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Ingest.Exclude = append(cfg.Ingest.Exclude, splitAndTrim(excludeStr)...)
	}

	// Point out missing API keys before the first run fails on them.
	warned := map[string]bool{}
	for _, p := range []ProviderType{cfg.EmbeddingProvider, cfg.Provider} {
		envVar := APIKeyEnvVar(p)
		if envVar != "" && !warned[envVar] && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running recall.\n", envVar)
			warned[envVar] = true
		}
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
