package conf

import (
	"fmt"
	"os"

	"github.com/lk2023060901/contract-parser-backend/internal/contract/chunker"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/logger"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/milvus"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/workerpool"
	"github.com/spf13/viper"
)

type Config struct {
	Chunker   chunker.Config    `mapstructure:"chunker"`
	Embedding EmbeddingConfig   `mapstructure:"embedding"`
	Milvus    milvus.Config     `mapstructure:"milvus"`
	Search    SearchConfig      `mapstructure:"search"`
	Workers   workerpool.Config `mapstructure:"workers"`
	Log       logger.Config     `mapstructure:"log"`
}

// EmbeddingConfig 向量化配置
type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider"`   // openai
	Model     string `mapstructure:"model"`      // 模型名称
	Dimension int    `mapstructure:"dimension"`  // 向量维度
	APIKey    string `mapstructure:"api_key"`    // API Key，缺省读环境变量
	BaseURL   string `mapstructure:"base_url"`   // 自定义服务地址（可选）
	BatchSize int    `mapstructure:"batch_size"` // 单次请求的最大文本数
}

// SearchConfig 检索配置
type SearchConfig struct {
	Collection string  `mapstructure:"collection"` // Milvus collection 名称
	TopK       int     `mapstructure:"top_k"`      // 返回结果数
	MinScore   float64 `mapstructure:"min_score"`  // 最低相似度
}

func setDefaults(v *viper.Viper) {
	cc := chunker.DefaultConfig()
	v.SetDefault("chunker.clause_pattern", cc.ClausePattern)
	v.SetDefault("chunker.sentence_max_chars", cc.SentenceMaxChars)
	v.SetDefault("chunker.sentence_min_chars", cc.SentenceMinChars)
	v.SetDefault("chunker.paragraph_max_chars", cc.ParagraphMaxChars)
	v.SetDefault("chunker.fallback_min_chunks", cc.FallbackMinChunks)
	v.SetDefault("chunker.fallback_max_chunk_chars", cc.FallbackMaxChunkChars)
	v.SetDefault("chunker.large_document_chars", cc.LargeDocumentChars)
	v.SetDefault("chunker.token_encoding", cc.TokenEncoding)

	v.SetDefault("embedding.provider", "openai")
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.dimension", 1536)
	v.SetDefault("embedding.batch_size", 64)

	v.SetDefault("milvus.address", "localhost:19530")
	v.SetDefault("milvus.database", "default")

	v.SetDefault("search.collection", "contract_chunks")
	v.SetDefault("search.top_k", 5)
	v.SetDefault("search.min_score", 0.0)

	v.SetDefault("workers.workers", 4)

	lc := logger.DefaultConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.format", lc.Format)
	v.SetDefault("log.output", lc.Output)
	v.SetDefault("log.file.filename", lc.File.Filename)
	v.SetDefault("log.file.maxsize", lc.File.MaxSize)
	v.SetDefault("log.file.maxage", lc.File.MaxAge)
	v.SetDefault("log.file.maxbackups", lc.File.MaxBackups)
}

// LoadConfig 加载配置文件，path 为空时仅使用默认值和环境变量
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// API Key 优先级：配置文件 > 环境变量
	if config.Embedding.APIKey == "" {
		config.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := c.Chunker.Validate(); err != nil {
		return fmt.Errorf("chunker config: %w", err)
	}

	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}

	if c.Embedding.BatchSize <= 0 {
		return fmt.Errorf("embedding batch size must be positive")
	}

	if c.Search.Collection == "" {
		return fmt.Errorf("search collection is required")
	}

	if c.Search.TopK <= 0 {
		return fmt.Errorf("search top_k must be positive")
	}

	if err := c.Milvus.Validate(); err != nil {
		return err
	}

	if err := c.Workers.Validate(); err != nil {
		return fmt.Errorf("workers config: %w", err)
	}

	return c.Log.Validate()
}
