package chunker

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer Token 计数器（基于 tiktoken）
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTokenizer 创建 Token 计数器
//
// encoding 为空时使用 cl100k_base（OpenAI embedding 模型所用编码）。
func NewTokenizer(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = "cl100k_base"
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding: %w", err)
	}

	return &Tokenizer{
		encoding: enc,
		name:     encoding,
	}, nil
}

// Count 统计文本的 token 数量
func (t *Tokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// Encoding 返回编码名称
func (t *Tokenizer) Encoding() string {
	return t.name
}
