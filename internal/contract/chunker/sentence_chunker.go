package chunker

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// SentenceChunker 句子分块器
//
// 按终止标点（. ! ?）切分句子后贪心合并，使每块尽量不超过 maxChars。
// 单句超长时整句单独成块，不截断。缩写识别不在范围内（接受的局限）。
type SentenceChunker struct {
	maxChars int
	minChars int
}

// NewSentenceChunker 创建句子分块器
func NewSentenceChunker(maxChars, minChars int) (*SentenceChunker, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("chunker: max chars must be positive")
	}

	if minChars < 0 {
		return nil, fmt.Errorf("chunker: min chars cannot be negative")
	}

	return &SentenceChunker{
		maxChars: maxChars,
		minChars: minChars,
	}, nil
}

// sentenceSpan 带原文偏移的句子
type sentenceSpan struct {
	text  string
	start int
	end   int
}

// splitSentences 按终止标点切分句子
//
// 终止标点后跟空白或文本结尾才视为句子边界，标点保留在句子内。
func splitSentences(text string) []sentenceSpan {
	var spans []sentenceSpan

	runes := []rune(text)
	byteOffset := 0
	sentStart := 0
	sentStartByte := 0

	flush := func(endRune, endByte int) {
		raw := string(runes[sentStart:endRune])
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			// 去掉首部空白对应的偏移修正
			lead := len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))
			trail := len(strings.TrimRight(raw, " \t\r\n"))
			spans = append(spans, sentenceSpan{
				text:  trimmed,
				start: sentStartByte + lead,
				end:   sentStartByte + trail,
			})
		}
		sentStart = endRune
		sentStartByte = endByte
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		size := len(string(r))

		if r == '.' || r == '!' || r == '?' {
			// 吞掉连续的终止标点
			j := i
			endByte := byteOffset + size
			for j+1 < len(runes) && (runes[j+1] == '.' || runes[j+1] == '!' || runes[j+1] == '?') {
				j++
				endByte += len(string(runes[j]))
			}

			atEnd := j+1 >= len(runes)
			if atEnd || unicode.IsSpace(runes[j+1]) {
				flush(j+1, endByte)
			}

			byteOffset = endByte
			i = j
			continue
		}

		byteOffset += size
	}

	// 末尾没有终止标点的残余文本
	flush(len(runes), byteOffset)

	return spans
}

// Chunk 将文本按句子边界分块
func (c *SentenceChunker) Chunk(ctx context.Context, text string) ([]*TextChunk, error) {
	if strings.TrimSpace(text) == "" {
		return []*TextChunk{}, nil
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return []*TextChunk{}, nil
	}

	chunks := make([]*TextChunk, 0)

	var buf strings.Builder
	bufStart := sentences[0].start
	bufEnd := sentences[0].start

	emit := func() {
		content := strings.TrimSpace(buf.String())
		if content == "" {
			return
		}
		chunks = append(chunks, &TextChunk{
			Content: content,
			Start:   bufStart,
			End:     bufEnd,
		})
		buf.Reset()
	}

	for _, s := range sentences {
		// 加入当前句子会超限时先关闭当前块
		if buf.Len() > 0 && buf.Len()+1+len(s.text) > c.maxChars {
			emit()
		}

		if buf.Len() == 0 {
			bufStart = s.start
		} else {
			buf.WriteByte(' ')
		}
		buf.WriteString(s.text)
		bufEnd = s.end

		// 单句超长：整句单独成块，不截断
		if buf.Len() > c.maxChars {
			emit()
		}
	}
	emit()

	// 结尾零散块并入前块（不超限时）
	if c.minChars > 0 && len(chunks) >= 2 {
		last := chunks[len(chunks)-1]
		prev := chunks[len(chunks)-2]
		if len(last.Content) < c.minChars && len(prev.Content)+1+len(last.Content) <= c.maxChars {
			prev.Content = prev.Content + " " + last.Content
			prev.End = last.End
			chunks = chunks[:len(chunks)-1]
		}
	}

	reindex(chunks)
	return chunks, nil
}
