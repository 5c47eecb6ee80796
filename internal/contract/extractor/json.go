package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
)

// JSONExtractor JSON 文本提取器，将结构化内容展平为可分块的文本
type JSONExtractor struct{}

// NewJSONExtractor 创建 JSON 提取器
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

// Extract 提取 JSON 内容并格式化为可读文本
func (e *JSONExtractor) Extract(ctx context.Context, reader io.Reader) (*ctypes.ExtractedDocument, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read json content: %w", err)
	}

	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("invalid json document")
	}

	var sb strings.Builder
	e.flatten(gjson.ParseBytes(content), 0, &sb)

	return &ctypes.ExtractedDocument{
		Text: sb.String(),
		Metadata: map[string]interface{}{
			"extractor":     "json",
			"original_size": len(content),
		},
	}, nil
}

// flatten 递归展平 JSON 值
func (e *JSONExtractor) flatten(value gjson.Result, indent int, sb *strings.Builder) {
	indentStr := strings.Repeat("  ", indent)

	switch {
	case value.IsObject():
		value.ForEach(func(key, val gjson.Result) bool {
			if val.IsObject() || val.IsArray() {
				sb.WriteString(fmt.Sprintf("%s%s:\n", indentStr, key.String()))
				e.flatten(val, indent+1, sb)
			} else {
				sb.WriteString(fmt.Sprintf("%s%s: %s\n", indentStr, key.String(), val.String()))
			}
			return true
		})
	case value.IsArray():
		i := 0
		value.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() || item.IsArray() {
				sb.WriteString(fmt.Sprintf("%s[%d]:\n", indentStr, i))
				e.flatten(item, indent+1, sb)
			} else {
				sb.WriteString(fmt.Sprintf("%s[%d]: %s\n", indentStr, i, item.String()))
			}
			i++
			return true
		})
	default:
		sb.WriteString(fmt.Sprintf("%s%s\n", indentStr, value.String()))
	}
}

// SupportedTypes 返回支持的文件类型
func (e *JSONExtractor) SupportedTypes() []ctypes.FileType {
	return []ctypes.FileType{
		ctypes.FileTypeJson,
	}
}
