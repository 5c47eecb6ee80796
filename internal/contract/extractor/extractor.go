package extractor

import (
	"context"
	"fmt"
	"io"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
)

// Extractor 文本提取器接口
type Extractor interface {
	// Extract 从原始文件内容中提取纯文本
	Extract(ctx context.Context, reader io.Reader) (*ctypes.ExtractedDocument, error)

	// SupportedTypes 返回支持的文件类型
	SupportedTypes() []ctypes.FileType
}

// Factory 提取器工厂
type Factory struct {
	extractors map[ctypes.FileType]Extractor
}

// NewFactory 创建提取器工厂
func NewFactory() *Factory {
	factory := &Factory{
		extractors: make(map[ctypes.FileType]Extractor),
	}

	factory.register(NewTextExtractor())
	factory.register(NewMarkdownExtractor())
	factory.register(NewPDFExtractor())
	factory.register(NewJSONExtractor())

	return factory
}

// register 注册提取器
func (f *Factory) register(e Extractor) {
	for _, fileType := range e.SupportedTypes() {
		f.extractors[fileType] = e
	}
}

// ExtractorFor 根据文件类型获取提取器
func (f *Factory) ExtractorFor(fileType ctypes.FileType) (Extractor, error) {
	e, ok := f.extractors[fileType]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
	return e, nil
}

// SupportedTypes 返回所有支持的文件类型
func (f *Factory) SupportedTypes() []ctypes.FileType {
	types := make([]ctypes.FileType, 0, len(f.extractors))
	for fileType := range f.extractors {
		types = append(types, fileType)
	}
	return types
}
