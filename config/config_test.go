package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: gemini
  api_key: test-key
embedding:
  provider: openai
  api_key: test-key
vectordb:
  provider: milvus
  host: localhost
  port: 19530
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.RAG.Threshold)
	assert.Equal(t, 10, cfg.RAG.TopK)
	assert.Equal(t, 4, cfg.RAG.HistoryRounds)
	assert.Equal(t, 2048, cfg.RAG.MaxContextTokens)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
	assert.Equal(t, "midc_land_bank", cfg.VectorDB.Collection)
	assert.Equal(t, "https://land.midcindia.org", cfg.Scraper.BaseURL)
	assert.Equal(t, 300, cfg.Scraper.DelayMs)
	assert.Equal(t, "midc_plots.db", cfg.Dataset.Path)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  metrics_addr: ":9091"
rag:
  threshold: 0.5
  top_k: 20
llm:
  provider: openai
  api_key: k
  model: gpt-4o
embedding:
  provider: openai
  api_key: k
  dimension: 1536
vectordb:
  provider: milvus
  host: milvus.internal
  port: 19530
  collection: plots_v2
cache:
  enabled: true
  capacity: 64
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.RAG.Threshold)
	assert.Equal(t, 20, cfg.RAG.TopK)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)
	assert.Equal(t, "plots_v2", cfg.VectorDB.Collection)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 64, cfg.Cache.Capacity)
	assert.Equal(t, ":9091", cfg.Server.MetricsAddr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown llm provider",
			yaml: `
llm:
  provider: anthropic
embedding:
  provider: openai
vectordb:
  provider: milvus
  host: localhost
`,
			wantErr: "unknown llm provider",
		},
		{
			name: "threshold out of range",
			yaml: `
rag:
  threshold: 1.5
llm:
  provider: gemini
embedding:
  provider: openai
vectordb:
  provider: milvus
  host: localhost
`,
			wantErr: "rag.threshold",
		},
		{
			name: "dimensions outside range",
			yaml: `
llm:
  provider: gemini
embedding:
  provider: openai
  dimension: 8
vectordb:
  provider: milvus
  host: localhost
`,
			wantErr: "outside typical range",
		},
		{
			name: "missing milvus host",
			yaml: `
llm:
  provider: gemini
embedding:
  provider: openai
vectordb:
  provider: milvus
`,
			wantErr: "vectordb host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
