package chunker

import (
	"context"
	"fmt"

	"github.com/lk2023060901/contract-parser-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// Coordinator 分块协调器
//
// 按策略名分发到对应的分块器，并对条款策略应用质量守卫：
// 退化的条款分块结果在大文档上回退为句子分块。
// 协调器无状态，单次调用之间互不影响，可并发使用。
type Coordinator struct {
	cfg       *Config
	tokenizer *Tokenizer
	logger    *logger.Logger
}

// NewCoordinator 创建分块协调器
//
// tokenizer 可为 nil，此时不统计 token 数量。
func NewCoordinator(cfg *Config, tokenizer *Tokenizer, lgr *logger.Logger) (*Coordinator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 提前编译条款正则，配置错误在创建时暴露
	if _, err := NewClauseChunker(cfg.ClausePattern); err != nil {
		return nil, err
	}

	if lgr == nil {
		lgr = logger.L()
	}

	return &Coordinator{
		cfg:       cfg,
		tokenizer: tokenizer,
		logger:    lgr,
	}, nil
}

// Chunk 按指定策略分块
//
// 未知策略立即返回配置错误；空白文本返回空序列。
// 条款策略下的退化结果触发句子回退，回退块的元数据携带
// fallback_from: "clauses"，其余策略不回退。
func (c *Coordinator) Chunk(ctx context.Context, text string, strategy Strategy) ([]*TextChunk, *Statistics, error) {
	splitter, err := c.newChunker(strategy)
	if err != nil {
		return nil, nil, err
	}

	chunks, err := splitter.Chunk(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	usedStrategy := strategy
	fallback := false

	if strategy == StrategyClauses && c.isDegenerate(chunks) && len(text) > c.cfg.LargeDocumentChars {
		c.logger.Warn("clause chunking produced a degenerate result, falling back to sentences",
			zap.Int("chunks", len(chunks)),
			zap.Int("text_length", len(text)))

		sentence, err := NewSentenceChunker(c.cfg.SentenceMaxChars, c.cfg.SentenceMinChars)
		if err != nil {
			return nil, nil, err
		}

		chunks, err = sentence.Chunk(ctx, text)
		if err != nil {
			return nil, nil, err
		}

		usedStrategy = StrategySentences
		fallback = true
	}

	c.annotate(chunks, usedStrategy, fallback)

	stats := CalculateStatistics(chunks, usedStrategy)

	c.logger.Info("text chunked",
		zap.String("strategy", string(usedStrategy)),
		zap.Bool("fallback", fallback),
		zap.Int("chunks", stats.TotalChunks),
		zap.Int("characters", stats.TotalCharacters))

	return chunks, stats, nil
}

// newChunker 按策略创建分块器
func (c *Coordinator) newChunker(strategy Strategy) (Chunker, error) {
	switch strategy {
	case StrategyClauses:
		return NewClauseChunker(c.cfg.ClausePattern)
	case StrategySentences:
		return NewSentenceChunker(c.cfg.SentenceMaxChars, c.cfg.SentenceMinChars)
	case StrategyParagraphs:
		return NewParagraphChunker(c.cfg.ParagraphMaxChars)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// isDegenerate 判断条款分块结果是否退化
//
// 单块、块数低于阈值、或存在超长块均视为退化。
func (c *Coordinator) isDegenerate(chunks []*TextChunk) bool {
	if len(chunks) <= 1 {
		return true
	}

	if len(chunks) < c.cfg.FallbackMinChunks {
		return true
	}

	for _, ch := range chunks {
		if len(ch.Content) > c.cfg.FallbackMaxChunkChars {
			return true
		}
	}

	return false
}

// annotate 填充分块元数据和 token 数量
func (c *Coordinator) annotate(chunks []*TextChunk, strategy Strategy, fallback bool) {
	for _, ch := range chunks {
		if c.tokenizer != nil {
			ch.TokenCount = c.tokenizer.Count(ch.Content)
		}

		meta := map[string]interface{}{
			"strategy": string(strategy),
			"start":    ch.Start,
			"end":      ch.End,
			"length":   len(ch.Content),
		}

		// 无标题块不写入 heading 键，避免下游空字符串误匹配过滤条件
		if ch.Heading != "" {
			meta["heading"] = ch.Heading
		}

		if ch.TokenCount > 0 {
			meta["token_count"] = ch.TokenCount
		}

		if fallback {
			meta["fallback_from"] = string(StrategyClauses)
		}

		ch.Metadata = meta
	}
}
