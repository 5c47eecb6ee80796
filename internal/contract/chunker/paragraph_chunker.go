package chunker

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// 段落边界：一个或多个空行（可含空白字符）
var paragraphSeparator = regexp.MustCompile(`\n[ \t]*\n[\s]*`)

// ParagraphChunker 段落分块器
//
// 按空行切分段落，一个段落对应一个块；超长段落委托句子分块器继续切分。
// 与句子策略不同，相邻的短段落不做贪心合并。
type ParagraphChunker struct {
	maxChars int
	sentence *SentenceChunker
}

// NewParagraphChunker 创建段落分块器
func NewParagraphChunker(maxChars int) (*ParagraphChunker, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("chunker: max chars must be positive")
	}

	// 超长段落降级切分时不合并结尾零散块
	sentence, err := NewSentenceChunker(maxChars, 0)
	if err != nil {
		return nil, err
	}

	return &ParagraphChunker{
		maxChars: maxChars,
		sentence: sentence,
	}, nil
}

// Chunk 将文本按段落分块
func (c *ParagraphChunker) Chunk(ctx context.Context, text string) ([]*TextChunk, error) {
	if strings.TrimSpace(text) == "" {
		return []*TextChunk{}, nil
	}

	chunks := make([]*TextChunk, 0)
	cursor := 0

	for _, para := range paragraphSeparator.Split(text, -1) {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" {
			cursor += len(para)
			continue
		}

		// 段落在原文中的位置
		start := strings.Index(text[cursor:], trimmed)
		if start < 0 {
			start = 0
		}
		start += cursor
		end := start + len(trimmed)
		cursor = end

		if len(trimmed) > c.maxChars {
			// 超长段落委托句子分块器
			subChunks, err := c.sentence.Chunk(ctx, trimmed)
			if err != nil {
				return nil, err
			}
			for _, sub := range subChunks {
				sub.Start += start
				sub.End += start
				chunks = append(chunks, sub)
			}
			continue
		}

		chunks = append(chunks, &TextChunk{
			Content: trimmed,
			Start:   start,
			End:     end,
		})
	}

	reindex(chunks)
	return chunks, nil
}
