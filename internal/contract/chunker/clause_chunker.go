package chunker

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// ClauseChunker 条款分块器（按编号标题切分合同文本）
type ClauseChunker struct {
	pattern *regexp.Regexp
}

// NewClauseChunker 创建条款分块器
//
// pattern 必须至少包含一个捕获组，用于提取标题行。
func NewClauseChunker(pattern string) (*ClauseChunker, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: pattern is empty", ErrInvalidPattern)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: pattern must contain a capturing group for the heading", ErrInvalidPattern)
	}

	return &ClauseChunker{pattern: re}, nil
}

// Chunk 将文本按条款标题切分
//
// 每个匹配的标题开启一个新块，块内容从标题行延伸到下一个标题之前。
// 首个标题之前的非空白前言作为无标题块放在序号 0；
// 相邻标题之间没有正文的空条款被丢弃。
// 零匹配时返回包含完整文本的单块结果，由协调器判定是否退化。
func (c *ClauseChunker) Chunk(ctx context.Context, text string) ([]*TextChunk, error) {
	if strings.TrimSpace(text) == "" {
		return []*TextChunk{}, nil
	}

	matches := c.pattern.FindAllStringSubmatchIndex(text, -1)

	if len(matches) == 0 {
		// 未匹配到任何条款，整体作为一个无标题块
		return []*TextChunk{
			{
				Index:   0,
				Content: strings.TrimSpace(text),
				Start:   0,
				End:     len(text),
			},
		}, nil
	}

	chunks := make([]*TextChunk, 0, len(matches)+1)

	// 前言：首个标题之前的文本，非空白则保留为无标题块
	preamble := text[:matches[0][0]]
	if strings.TrimSpace(preamble) != "" {
		chunks = append(chunks, &TextChunk{
			Content: strings.TrimSpace(preamble),
			Start:   0,
			End:     matches[0][0],
		})
	}

	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		// 捕获组 1 为标题行
		heading := strings.TrimSpace(text[m[2]:m[3]])
		content := strings.TrimSpace(text[start:end])

		// 标题之后没有正文的空条款不输出
		body := text[m[1]:end]
		if strings.TrimSpace(body) == "" {
			continue
		}

		chunks = append(chunks, &TextChunk{
			Content: content,
			Heading: heading,
			Start:   start,
			End:     end,
		})
	}

	if len(chunks) == 0 {
		// 所有条款均为空，退回单块结果
		return []*TextChunk{
			{
				Index:   0,
				Content: strings.TrimSpace(text),
				Start:   0,
				End:     len(text),
			},
		}, nil
	}

	reindex(chunks)
	return chunks, nil
}

// reindex 重新编号，保证 Index 从 0 连续
func reindex(chunks []*TextChunk) {
	for i, ch := range chunks {
		ch.Index = i
	}
}
