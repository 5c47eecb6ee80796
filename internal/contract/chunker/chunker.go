package chunker

import (
	"context"
	"errors"
	"fmt"
)

// Strategy 分块策略
type Strategy string

const (
	StrategyClauses    Strategy = "clauses"    // 按合同条款编号分块
	StrategySentences  Strategy = "sentences"  // 按句子边界分块
	StrategyParagraphs Strategy = "paragraphs" // 按段落（空行）分块
)

var (
	// ErrUnknownStrategy 未知的分块策略（配置错误，不重试）
	ErrUnknownStrategy = errors.New("chunker: unknown strategy")

	// ErrInvalidPattern 条款正则表达式无效（配置错误，不重试）
	ErrInvalidPattern = errors.New("chunker: invalid clause pattern")
)

// ParseStrategy 解析策略名称
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyClauses, StrategySentences, StrategyParagraphs:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Chunker 文本分块接口
type Chunker interface {
	// Chunk 将文本分块，返回有序的分块序列
	Chunk(ctx context.Context, text string) ([]*TextChunk, error)
}

// TextChunk 文本分块
//
// Index 在单次分块调用内从 0 连续递增，仅在该次调用内稳定。
// Heading 仅条款分块有值，空字符串表示无标题。
type TextChunk struct {
	Index      int                    // 块序号（从 0 开始）
	Content    string                 // 块内容（已去除首尾空白，非空）
	Heading    string                 // 匹配到的条款标题（如 "1. TERMINATION"）
	Start      int                    // 在原文中的起始位置
	End        int                    // 在原文中的结束位置
	TokenCount int                    // Token 数量（未启用 tokenizer 时为 0）
	Metadata   map[string]interface{} // 元数据（策略名、偏移量、长度等）
}

// Config 分块配置
type Config struct {
	// ClausePattern 条款标题正则，至少包含一个捕获组。
	// 字符类 [A-Z] 保持 ASCII 语义，与原始合同编号格式一致。
	ClausePattern string `mapstructure:"clause_pattern"`

	// SentenceMaxChars 句子分块的最大字符数
	SentenceMaxChars int `mapstructure:"sentence_max_chars"`

	// SentenceMinChars 句子分块的最小字符数（结尾零散块并入前块的阈值）
	SentenceMinChars int `mapstructure:"sentence_min_chars"`

	// ParagraphMaxChars 段落分块的最大字符数，超过则降级为句子切分
	ParagraphMaxChars int `mapstructure:"paragraph_max_chars"`

	// FallbackMinChunks 条款分块结果少于该数量视为退化
	FallbackMinChunks int `mapstructure:"fallback_min_chunks"`

	// FallbackMaxChunkChars 条款分块中单块超过该长度视为退化
	FallbackMaxChunkChars int `mapstructure:"fallback_max_chunk_chars"`

	// LargeDocumentChars 文档超过该长度时退化结果才触发回退
	LargeDocumentChars int `mapstructure:"large_document_chars"`

	// TokenEncoding tiktoken 编码名称，空字符串表示不统计 token
	TokenEncoding string `mapstructure:"token_encoding"`
}

// DefaultConfig 默认分块配置
func DefaultConfig() *Config {
	return &Config{
		ClausePattern:         `(?:^|\n)(\d+(\.\d+)*\.?\s+[A-Z][^\n]+)`,
		SentenceMaxChars:      1000,
		SentenceMinChars:      100,
		ParagraphMaxChars:     2000,
		FallbackMinChunks:     2,
		FallbackMaxChunkChars: 3000,
		LargeDocumentChars:    2000,
		TokenEncoding:         "cl100k_base",
	}
}

// Validate 验证分块配置
func (c *Config) Validate() error {
	if c.ClausePattern == "" {
		return fmt.Errorf("%w: pattern is empty", ErrInvalidPattern)
	}

	if c.SentenceMaxChars <= 0 {
		return fmt.Errorf("chunker: sentence max chars must be positive")
	}

	if c.SentenceMinChars < 0 {
		return fmt.Errorf("chunker: sentence min chars cannot be negative")
	}

	if c.ParagraphMaxChars <= 0 {
		return fmt.Errorf("chunker: paragraph max chars must be positive")
	}

	if c.FallbackMinChunks < 0 {
		return fmt.Errorf("chunker: fallback min chunks cannot be negative")
	}

	if c.FallbackMaxChunkChars <= 0 {
		return fmt.Errorf("chunker: fallback max chunk chars must be positive")
	}

	if c.LargeDocumentChars < 0 {
		return fmt.Errorf("chunker: large document threshold cannot be negative")
	}

	return nil
}
