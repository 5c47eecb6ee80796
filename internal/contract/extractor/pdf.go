package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
)

// PDFExtractor PDF 文本提取器
type PDFExtractor struct{}

// NewPDFExtractor 创建 PDF 提取器
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract 提取 PDF 文本（使用 go-fitz/MuPDF）
func (e *PDFExtractor) Extract(ctx context.Context, reader io.Reader) (*ctypes.ExtractedDocument, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF data: %w", err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	numPages := doc.NumPage()

	for i := 0; i < numPages; i++ {
		text, err := doc.Text(i)
		if err != nil {
			// 跳过无法提取的页面
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &ctypes.ExtractedDocument{
		Text: textBuilder.String(),
		Metadata: map[string]interface{}{
			"extractor":  "pdf",
			"page_count": numPages,
		},
	}, nil
}

// SupportedTypes 返回支持的文件类型
func (e *PDFExtractor) SupportedTypes() []ctypes.FileType {
	return []ctypes.FileType{
		ctypes.FileTypePdf,
	}
}
