package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Chunker.SentenceMaxChars)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 1536, cfg.Embedding.Dimension)
	assert.Equal(t, "localhost:19530", cfg.Milvus.Address)
	assert.Equal(t, "contract_chunks", cfg.Search.Collection)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 4, cfg.Workers.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
chunker:
  sentence_max_chars: 500
embedding:
  model: text-embedding-3-large
  dimension: 3072
search:
  top_k: 10
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Chunker.SentenceMaxChars)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
	assert.Equal(t, 3072, cfg.Embedding.Dimension)
	assert.Equal(t, 10, cfg.Search.TopK)
	// 未覆盖的字段保留默认值
	assert.Equal(t, 2000, cfg.Chunker.ParagraphMaxChars)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestConfig_Validate_Invalid(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.Embedding.Dimension = 0
	assert.Error(t, cfg.Validate())

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	cfg.Search.Collection = ""
	assert.Error(t, cfg.Validate())
}
