package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/contract-parser-backend/internal/conf"
)

func TestNewOpenAIEmbedder(t *testing.T) {
	cfg := &conf.EmbeddingConfig{
		APIKey:    "test-key",
		Model:     "text-embedding-3-small",
		Dimension: 1536,
		BatchSize: 64,
	}

	e, err := NewOpenAIEmbedder(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 1536, e.Dimension())
	assert.Equal(t, "text-embedding-3-small", e.Model())
}

func TestNewOpenAIEmbedder_Defaults(t *testing.T) {
	e, err := NewOpenAIEmbedder(&conf.EmbeddingConfig{APIKey: "test-key"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1536, e.Dimension())
	assert.Equal(t, "text-embedding-3-small", e.Model())
}

func TestNewOpenAIEmbedder_Invalid(t *testing.T) {
	_, err := NewOpenAIEmbedder(nil, nil)
	assert.Error(t, err)

	_, err = NewOpenAIEmbedder(&conf.EmbeddingConfig{}, nil)
	assert.Error(t, err)
}
