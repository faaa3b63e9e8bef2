package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the MIDC land-bank RAG server.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	RAG       RAGConfig       `json:"rag" yaml:"rag"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	VectorDB  VectorDBConfig  `json:"vectordb" yaml:"vectordb"`
	Memory    MemoryConfig    `json:"memory" yaml:"memory"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Scraper   ScraperConfig   `json:"scraper" yaml:"scraper"`
	Dataset   DatasetConfig   `json:"dataset" yaml:"dataset"`
}

// ServerConfig holds process-level settings.
type ServerConfig struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	// MetricsAddr is the listen address for the Prometheus scrape
	// endpoint (/metrics); empty disables it.
	MetricsAddr string `json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"`
}

// RAGConfig controls retrieval behavior for chat answers.
type RAGConfig struct {
	// Threshold is the minimum similarity score a retrieved document
	// must reach to be used as answer context.
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	TopK      int     `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	// HistoryRounds is how many past conversation rounds are included
	// in the answer prompt.
	HistoryRounds int `json:"history_rounds,omitempty" yaml:"history_rounds,omitempty"`
	// MaxContextTokens caps the retrieved-context portion of the prompt.
	MaxContextTokens int `json:"max_context_tokens,omitempty" yaml:"max_context_tokens,omitempty"`
}

// LLMConfig defines the answer-generation model.
type LLMConfig struct {
	Provider    string  `json:"provider" yaml:"provider"` // Available options: gemini, openai
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// EmbeddingConfig defines the embedding model endpoint.
type EmbeddingConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: openai
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimension,omitempty"`
}

// VectorDBConfig defines the vector store connection and schema mapping.
type VectorDBConfig struct {
	Provider   string        `json:"provider" yaml:"provider"` // Available options: milvus
	Host       string        `json:"host,omitempty" yaml:"host,omitempty"`
	Port       int           `json:"port,omitempty" yaml:"port,omitempty"`
	Database   string        `json:"database,omitempty" yaml:"database,omitempty"`
	Collection string        `json:"collection,omitempty" yaml:"collection,omitempty"`
	Username   string        `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string        `json:"password,omitempty" yaml:"password,omitempty"`
	Mapping    MappingConfig `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// MemoryConfig controls conversation history retention.
type MemoryConfig struct {
	MaxRounds int `json:"max_rounds,omitempty" yaml:"max_rounds,omitempty"`
}

// CacheConfig controls the L1 cache of rewritten queries.
type CacheConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	Capacity   int  `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	TTLSeconds int  `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty"`
}

// ScraperConfig controls the land-bank website scraper.
type ScraperConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// MaxPages limits pagination per property-type tab; 0 means no limit.
	MaxPages int               `json:"max_pages,omitempty" yaml:"max_pages,omitempty"`
	DelayMs  int               `json:"delay_ms,omitempty" yaml:"delay_ms,omitempty"`
	HTTP     *HTTPClientConfig `json:"http,omitempty" yaml:"http,omitempty"`
}

// DatasetConfig locates the local SQLite plot store.
type DatasetConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// HTTPClientConfig defines common options for outbound HTTP calls.
type HTTPClientConfig struct {
	TimeoutMs              int      `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
	Retry                  int      `json:"retry,omitempty" yaml:"retry,omitempty"`
	BackoffMinMs           int      `json:"backoff_min_ms,omitempty" yaml:"backoff_min_ms,omitempty"`
	BackoffMaxMs           int      `json:"backoff_max_ms,omitempty" yaml:"backoff_max_ms,omitempty"`
	HostAllowlist          []string `json:"host_allowlist,omitempty" yaml:"host_allowlist,omitempty"`
	MaxConsecutiveFailures int      `json:"max_consecutive_failures,omitempty" yaml:"max_consecutive_failures,omitempty"`
	CircuitOpenSeconds     int      `json:"circuit_open_seconds,omitempty" yaml:"circuit_open_seconds,omitempty"`
}

// MappingConfig defines field mapping configuration for vector databases
type MappingConfig struct {
	Fields []FieldMapping `json:"fields,omitempty" yaml:"fields,omitempty"`
	Index  IndexConfig    `json:"index,omitempty" yaml:"index,omitempty"`
	Search SearchConfig   `json:"search,omitempty" yaml:"search,omitempty"`
}

// FieldMapping defines mapping for a single field
type FieldMapping struct {
	StandardName string                 `json:"standard_name" yaml:"standard_name"`
	RawName      string                 `json:"raw_name" yaml:"raw_name"`
	Properties   map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

func (f FieldMapping) IsPrimaryKey() bool {
	return f.StandardName == "id"
}

func (f FieldMapping) IsVectorField() bool {
	return f.StandardName == "vector"
}

func (f FieldMapping) MaxLength() int {
	if f.Properties == nil {
		return 0
	}
	maxLength, ok := f.Properties["max_length"].(int)
	if !ok {
		return 256
	}
	return maxLength
}

// IndexConfig defines configuration for index parameters
type IndexConfig struct {
	// Index type, e.g., IVF_FLAT, IVF_SQ8, HNSW, etc.
	IndexType string `json:"index_type" yaml:"index_type"`
	// Index parameter configuration
	Params map[string]interface{} `json:"params" yaml:"params"`
}

func (i IndexConfig) ParamsString(key string) (string, error) {
	if mVal, ok := i.Params[key].(string); ok {
		return mVal, nil
	}
	return "", fmt.Errorf("params %s not found", key)
}

func (i IndexConfig) ParamsInt64(key string) (int64, error) {
	if mVal, ok := i.Params[key].(int64); ok {
		return mVal, nil
	}
	if mVal, ok := i.Params[key].(int); ok {
		return int64(mVal), nil
	}
	return 0, fmt.Errorf("params %s not found", key)
}

// SearchConfig defines configuration for search parameters
type SearchConfig struct {
	// Metric type, e.g., L2, IP, etc.
	MetricType string `json:"metric_type,omitempty" yaml:"metric_type,omitempty"`
	// Search parameter configuration
	Params map[string]interface{} `json:"params" yaml:"params"`
}

func (s SearchConfig) ParamsInt64(key string) (int64, error) {
	if mVal, ok := s.Params[key].(int64); ok {
		return mVal, nil
	}
	if mVal, ok := s.Params[key].(int); ok {
		return int64(mVal), nil
	}
	return 0, fmt.Errorf("params %s not found", key)
}

// Load reads, parses, validates, and applies defaults to a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued fields with the standard deployment defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "midc-land-bank"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.RAG.Threshold == 0 {
		c.RAG.Threshold = 0.3
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = 10
	}
	if c.RAG.HistoryRounds == 0 {
		c.RAG.HistoryRounds = 4
	}
	if c.RAG.MaxContextTokens == 0 {
		c.RAG.MaxContextTokens = 2048
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "sentence-transformers/all-mpnet-base-v2"
	}
	if c.Embedding.Dimensions == 0 {
		c.Embedding.Dimensions = 768
	}
	if c.VectorDB.Provider == "" {
		c.VectorDB.Provider = "milvus"
	}
	if c.VectorDB.Collection == "" {
		c.VectorDB.Collection = "midc_land_bank"
	}
	if c.Memory.MaxRounds == 0 {
		c.Memory.MaxRounds = 10
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = 512
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
	if c.Scraper.BaseURL == "" {
		c.Scraper.BaseURL = "https://land.midcindia.org"
	}
	if c.Scraper.DelayMs == 0 {
		c.Scraper.DelayMs = 300
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "midc_plots.db"
	}
}
