package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
)

func TestFactory_ExtractorFor(t *testing.T) {
	factory := NewFactory()

	for _, ft := range []ctypes.FileType{ctypes.FileTypeTxt, ctypes.FileTypeMd, ctypes.FileTypePdf, ctypes.FileTypeJson} {
		e, err := factory.ExtractorFor(ft)
		require.NoError(t, err, "file type %s", ft)
		assert.NotNil(t, e)
	}

	_, err := factory.ExtractorFor(ctypes.FileType("docx"))
	assert.Error(t, err)
}

func TestTextExtractor_Extract(t *testing.T) {
	e := NewTextExtractor()

	doc, err := e.Extract(context.Background(), strings.NewReader("1. TERMINATION\nEither party may terminate."))
	require.NoError(t, err)

	assert.Equal(t, "1. TERMINATION\nEither party may terminate.", doc.Text)
	assert.Equal(t, "text", doc.Metadata["extractor"])
}

func TestMarkdownExtractor_Extract(t *testing.T) {
	e := NewMarkdownExtractor()

	md := "# TERMINATION\n\nEither party may **terminate** this agreement.\n\n- with notice\n- without cause\n"

	doc, err := e.Extract(context.Background(), strings.NewReader(md))
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "TERMINATION")
	assert.Contains(t, doc.Text, "terminate")
	assert.Contains(t, doc.Text, "with notice")
	// 标签全部剥离
	assert.NotContains(t, doc.Text, "<")
	assert.NotContains(t, doc.Text, "**")
}

func TestMarkdownExtractor_ParagraphsPreserved(t *testing.T) {
	e := NewMarkdownExtractor()

	md := "First paragraph.\n\nSecond paragraph."

	doc, err := e.Extract(context.Background(), strings.NewReader(md))
	require.NoError(t, err)

	// 段落分隔保留，供段落分块策略使用
	assert.Contains(t, doc.Text, "\n\n")
}

func TestJSONExtractor_Extract(t *testing.T) {
	e := NewJSONExtractor()

	raw := `{"title": "Service Agreement", "clauses": [{"heading": "TERMINATION", "body": "Either party may terminate."}]}`

	doc, err := e.Extract(context.Background(), strings.NewReader(raw))
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "title: Service Agreement")
	assert.Contains(t, doc.Text, "heading: TERMINATION")
	assert.Contains(t, doc.Text, "body: Either party may terminate.")
}

func TestJSONExtractor_InvalidJSON(t *testing.T) {
	e := NewJSONExtractor()

	_, err := e.Extract(context.Background(), strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestFileTypeFromPath(t *testing.T) {
	assert.Equal(t, ctypes.FileTypePdf, ctypes.FileTypeFromPath("/tmp/contract.PDF"))
	assert.Equal(t, ctypes.FileTypeMd, ctypes.FileTypeFromPath("notes.markdown"))
	assert.Equal(t, ctypes.FileTypeTxt, ctypes.FileTypeFromPath("a.txt"))
	assert.False(t, ctypes.FileTypeFromPath("a.docx").Valid())
}
