package extractor

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
)

// MarkdownExtractor Markdown 文本提取器
type MarkdownExtractor struct{}

// NewMarkdownExtractor 创建 Markdown 提取器
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

// Extract 提取 Markdown 文本
func (e *MarkdownExtractor) Extract(ctx context.Context, reader io.Reader) (*ctypes.ExtractedDocument, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown content: %w", err)
	}

	// 先渲染为 HTML，再剥离标签得到纯文本
	html := blackfriday.Run(content)
	plainText := e.htmlToPlainText(string(html))

	return &ctypes.ExtractedDocument{
		Text: plainText,
		Metadata: map[string]interface{}{
			"extractor": "markdown",
		},
	}, nil
}

// htmlToPlainText 将 HTML 转换为纯文本
func (e *MarkdownExtractor) htmlToPlainText(html string) string {
	reScript := regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`)
	html = reScript.ReplaceAllString(html, "")
	reStyle := regexp.MustCompile(`(?i)<style[^>]*>.*?</style>`)
	html = reStyle.ReplaceAllString(html, "")

	// 块级结束标签转换为段落分隔
	html = regexp.MustCompile(`(?i)</p>|</h[1-6]>|</blockquote>`).ReplaceAllString(html, "\n\n")
	html = regexp.MustCompile(`(?i)<br\s*/?>|</li>`).ReplaceAllString(html, "\n")

	reTag := regexp.MustCompile(`<[^>]+>`)
	text := reTag.ReplaceAllString(html, "")

	text = e.decodeHTMLEntities(text)
	text = e.cleanWhitespace(text)

	return text
}

// decodeHTMLEntities 解码常见的 HTML 实体
func (e *MarkdownExtractor) decodeHTMLEntities(text string) string {
	entities := map[string]string{
		"&nbsp;":  " ",
		"&lt;":    "<",
		"&gt;":    ">",
		"&amp;":   "&",
		"&quot;":  "\"",
		"&apos;":  "'",
		"&ndash;": "–",
		"&mdash;": "—",
	}

	for entity, replacement := range entities {
		text = strings.ReplaceAll(text, entity, replacement)
	}

	return text
}

// cleanWhitespace 清理多余的空白字符，保留段落分隔
func (e *MarkdownExtractor) cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, len(lines))
	for i, line := range lines {
		cleaned[i] = strings.TrimSpace(line)
	}
	text = strings.Join(cleaned, "\n")

	// 三个以上连续换行压缩为段落分隔
	reMultiNewline := regexp.MustCompile(`\n{3,}`)
	text = reMultiNewline.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// SupportedTypes 返回支持的文件类型
func (e *MarkdownExtractor) SupportedTypes() []ctypes.FileType {
	return []ctypes.FileType{
		ctypes.FileTypeMd,
	}
}
