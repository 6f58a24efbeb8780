package config

// DefaultDataDir is where the parent store and vector index live.
const DefaultDataDir = ".recall"

// DefaultConfigFile is the config filename looked up in the working directory.
const DefaultConfigFile = ".recall.yml"

// embeddingDefaults maps each embedding provider to its default model.
var embeddingDefaults = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderOllama: "nomic-embed-text",
}

// chatDefaults maps each LLM provider to its default query-expansion model.
var chatDefaults = map[ProviderType]string{
	ProviderAnthropic: "claude-haiku-4-5-20251001",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderOllama:    "llama3",
}

// DefaultExcludes are glob patterns excluded from ingestion by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
	"go.sum",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults. Query expansion
// picks small, cheap models: it generates short query rewrites, not prose.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             chatDefaults[ProviderOpenAI],
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    embeddingDefaults[ProviderOpenAI],
		DataDir:           DefaultDataDir,
		Collection:        "default",
		TopK:              10,
		ExpandQueries:     true,
		Expansions:        3,
		Chunking: ChunkingConfig{
			ParentSize:    2000,
			ParentOverlap: 200,
			ChildSize:     400,
			ChildOverlap:  50,
		},
		Ingest: IngestConfig{
			Include:     []string{"**"},
			Exclude:     DefaultExcludes,
			MaxFileSize: 1 << 20,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultChatModel returns the default expansion model for a provider.
func DefaultChatModel(p ProviderType) string {
	if m, ok := chatDefaults[p]; ok {
		return m
	}
	return chatDefaults[ProviderOpenAI]
}

// DefaultEmbeddingModel returns the default embedding model for a provider.
func DefaultEmbeddingModel(p ProviderType) string {
	if m, ok := embeddingDefaults[p]; ok {
		return m
	}
	return embeddingDefaults[ProviderOpenAI]
}
