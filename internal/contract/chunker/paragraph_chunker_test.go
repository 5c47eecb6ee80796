package chunker

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestParagraphChunker_Chunk(t *testing.T) {
	chunker, err := NewParagraphChunker(200)
	if err != nil {
		t.Fatalf("NewParagraphChunker failed: %v", err)
	}

	text := "First paragraph of the agreement.\n\nSecond paragraph with terms.\n\n\nThird paragraph, after extra blank lines."

	chunks, err := chunker.Chunk(context.Background(), text)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	want := []string{
		"First paragraph of the agreement.",
		"Second paragraph with terms.",
		"Third paragraph, after extra blank lines.",
	}

	if !reflect.DeepEqual(chunkContents(chunks), want) {
		t.Errorf("Unexpected paragraphs: %v", chunkContents(chunks))
	}

	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("Expected index %d, got %d", i, ch.Index)
		}
	}
}

func TestParagraphChunker_ShortParagraphsNotMerged(t *testing.T) {
	chunker, err := NewParagraphChunker(1000)
	if err != nil {
		t.Fatalf("NewParagraphChunker failed: %v", err)
	}

	// 与句子策略不同，短段落不做贪心合并
	text := "One.\n\nTwo.\n\nThree."

	chunks, err := chunker.Chunk(context.Background(), text)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks (no merging), got %d: %v", len(chunks), chunkContents(chunks))
	}
}

func TestParagraphChunker_OversizedParagraphDelegates(t *testing.T) {
	chunker, err := NewParagraphChunker(60)
	if err != nil {
		t.Fatalf("NewParagraphChunker failed: %v", err)
	}

	// 超长段落委托句子分块器继续切分
	big := "The lessee shall pay rent monthly. The lessor shall maintain the premises. Either party may terminate with notice."
	text := "Short intro paragraph.\n\n" + big

	chunks, err := chunker.Chunk(context.Background(), text)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if len(chunks) < 3 {
		t.Fatalf("Expected oversized paragraph to be split, got %d chunks", len(chunks))
	}

	if chunks[0].Content != "Short intro paragraph." {
		t.Errorf("Unexpected first chunk: %q", chunks[0].Content)
	}

	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("Expected index %d, got %d", i, ch.Index)
		}
		if len(ch.Content) > 60 {
			t.Errorf("Chunk %d exceeds max size: %q", i, ch.Content)
		}
		if strings.TrimSpace(ch.Content) == "" {
			t.Errorf("Chunk %d is empty", i)
		}
	}
}

func TestParagraphChunker_EmptyInput(t *testing.T) {
	chunker, err := NewParagraphChunker(100)
	if err != nil {
		t.Fatalf("NewParagraphChunker failed: %v", err)
	}

	for _, text := range []string{"", "\n\n\n", "  \n \n  "} {
		chunks, err := chunker.Chunk(context.Background(), text)
		if err != nil {
			t.Fatalf("Chunk failed: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("Expected empty result for %q, got %d chunks", text, len(chunks))
		}
	}
}

func TestNewParagraphChunker_InvalidConfig(t *testing.T) {
	if _, err := NewParagraphChunker(0); err == nil {
		t.Error("Expected error for non-positive max chars")
	}
}
