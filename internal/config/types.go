package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
)

// ChunkingConfig holds the two-tier chunking profile.
type ChunkingConfig struct {
	ParentSize    int `yaml:"parent_size" koanf:"parent_size"`
	ParentOverlap int `yaml:"parent_overlap" koanf:"parent_overlap"`
	ChildSize     int `yaml:"child_size" koanf:"child_size"`
	ChildOverlap  int `yaml:"child_overlap" koanf:"child_overlap"`
}

// IngestConfig holds file discovery settings for directory ingestion.
type IngestConfig struct {
	Include     []string `yaml:"include" koanf:"include"`
	Exclude     []string `yaml:"exclude" koanf:"exclude"`
	MaxFileSize int64    `yaml:"max_file_size" koanf:"max_file_size"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" koanf:"addr"`
}

// Config is the top-level recall configuration, corresponding to .recall.yml.
type Config struct {
	Provider          ProviderType   `yaml:"provider" koanf:"provider"`
	Model             string         `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType   `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string         `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string         `yaml:"data_dir" koanf:"data_dir"`
	Collection        string         `yaml:"collection" koanf:"collection"`
	TopK              int            `yaml:"top_k" koanf:"top_k"`
	ExpandQueries     bool           `yaml:"expand_queries" koanf:"expand_queries"`
	Expansions        int            `yaml:"expansions" koanf:"expansions"`
	Chunking          ChunkingConfig `yaml:"chunking" koanf:"chunking"`
	Ingest            IngestConfig   `yaml:"ingest" koanf:"ingest"`
	Server            ServerConfig   `yaml:"server" koanf:"server"`
}
