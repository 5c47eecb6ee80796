package extractor

import (
	"context"
	"fmt"
	"io"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
)

// TextExtractor 纯文本提取器
type TextExtractor struct{}

// NewTextExtractor 创建纯文本提取器
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract 读取纯文本内容
func (e *TextExtractor) Extract(ctx context.Context, reader io.Reader) (*ctypes.ExtractedDocument, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read text content: %w", err)
	}

	return &ctypes.ExtractedDocument{
		Text: string(content),
		Metadata: map[string]interface{}{
			"extractor": "text",
		},
	}, nil
}

// SupportedTypes 返回支持的文件类型
func (e *TextExtractor) SupportedTypes() []ctypes.FileType {
	return []ctypes.FileType{
		ctypes.FileTypeTxt,
	}
}
