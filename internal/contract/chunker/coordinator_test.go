package chunker

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestCoordinator(t *testing.T, cfg *Config) *Coordinator {
	t.Helper()

	coord, err := NewCoordinator(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	return coord
}

func TestCoordinator_Dispatch(t *testing.T) {
	coord := newTestCoordinator(t, nil)

	text := "1. TERMINATION\nEither party may terminate this agreement.\n2. PAYMENT\nPayment is due monthly."

	tests := []struct {
		strategy Strategy
		want     int
	}{
		{StrategyClauses, 2},
		{StrategyParagraphs, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			chunks, stats, err := coord.Chunk(context.Background(), text, tt.strategy)
			if err != nil {
				t.Fatalf("Chunk failed: %v", err)
			}

			if len(chunks) != tt.want {
				t.Errorf("Expected %d chunks, got %d", tt.want, len(chunks))
			}

			if stats.StrategyUsed != tt.strategy {
				t.Errorf("Expected strategy %q in stats, got %q", tt.strategy, stats.StrategyUsed)
			}

			for _, ch := range chunks {
				if ch.Metadata["strategy"] != string(tt.strategy) {
					t.Errorf("Expected strategy metadata %q, got %v", tt.strategy, ch.Metadata["strategy"])
				}
			}
		})
	}
}

func TestCoordinator_UnknownStrategy(t *testing.T) {
	coord := newTestCoordinator(t, nil)

	_, _, err := coord.Chunk(context.Background(), "some text", Strategy("tokens"))
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
}

func TestCoordinator_FallbackOnDegenerateClauses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SentenceMaxChars = 100
	cfg.SentenceMinChars = 0
	cfg.LargeDocumentChars = 200

	coord := newTestCoordinator(t, cfg)

	// 无条款编号的大文档：条款策略退化，应回退为句子分块
	text := strings.Repeat("the parties agree to the terms stated in this document. ", 10)
	if len(text) <= cfg.LargeDocumentChars {
		t.Fatal("test text must exceed the large document threshold")
	}

	chunks, stats, err := coord.Chunk(context.Background(), text, StrategyClauses)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if stats.StrategyUsed != StrategySentences {
		t.Errorf("Expected fallback to sentences, stats recorded %q", stats.StrategyUsed)
	}

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple sentence chunks after fallback, got %d", len(chunks))
	}

	for _, ch := range chunks {
		if ch.Metadata["fallback_from"] != string(StrategyClauses) {
			t.Errorf("Chunk %d missing fallback_from metadata: %v", ch.Index, ch.Metadata)
		}
		if ch.Metadata["strategy"] != string(StrategySentences) {
			t.Errorf("Chunk %d has wrong strategy metadata: %v", ch.Index, ch.Metadata)
		}
	}
}

func TestCoordinator_NoFallbackForSmallDocument(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LargeDocumentChars = 2000

	coord := newTestCoordinator(t, cfg)

	// 小文档即使退化也不回退
	text := "short text without any clause headings."

	chunks, stats, err := coord.Chunk(context.Background(), text, StrategyClauses)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if stats.StrategyUsed != StrategyClauses {
		t.Errorf("Expected clauses strategy retained, got %q", stats.StrategyUsed)
	}

	if len(chunks) != 1 {
		t.Fatalf("Expected degenerate single chunk, got %d", len(chunks))
	}

	if _, ok := chunks[0].Metadata["fallback_from"]; ok {
		t.Error("Small document must not carry fallback metadata")
	}
}

func TestCoordinator_NoFallbackForSentencesOrParagraphs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LargeDocumentChars = 10

	coord := newTestCoordinator(t, cfg)

	// 句子/段落策略永不回退
	text := "a single short utterance far beyond ten characters"

	for _, strategy := range []Strategy{StrategySentences, StrategyParagraphs} {
		chunks, stats, err := coord.Chunk(context.Background(), text, strategy)
		if err != nil {
			t.Fatalf("Chunk failed for %s: %v", strategy, err)
		}

		if stats.StrategyUsed != strategy {
			t.Errorf("Expected strategy %q retained, got %q", strategy, stats.StrategyUsed)
		}

		for _, ch := range chunks {
			if _, ok := ch.Metadata["fallback_from"]; ok {
				t.Errorf("Strategy %q must not fall back", strategy)
			}
		}
	}
}

func TestCoordinator_HeadingMetadataOmittedWhenAbsent(t *testing.T) {
	coord := newTestCoordinator(t, nil)

	text := "PREAMBLE without heading\n1. TERMINATION\nEither party may terminate."

	chunks, _, err := coord.Chunk(context.Background(), text, StrategyClauses)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}

	// 无标题块的元数据不应包含 heading 键（避免空串误匹配过滤器）
	if _, ok := chunks[0].Metadata["heading"]; ok {
		t.Errorf("Headingless chunk must omit the heading key: %v", chunks[0].Metadata)
	}

	if chunks[1].Metadata["heading"] != "1. TERMINATION" {
		t.Errorf("Expected heading metadata, got %v", chunks[1].Metadata)
	}
}

func TestCoordinator_EmptyText(t *testing.T) {
	coord := newTestCoordinator(t, nil)

	for _, strategy := range []Strategy{StrategyClauses, StrategySentences, StrategyParagraphs} {
		chunks, stats, err := coord.Chunk(context.Background(), "   \n ", strategy)
		if err != nil {
			t.Fatalf("Chunk failed for %s: %v", strategy, err)
		}

		if len(chunks) != 0 {
			t.Errorf("Expected empty result for %s, got %d chunks", strategy, len(chunks))
		}

		if stats.TotalChunks != 0 || stats.TotalCharacters != 0 {
			t.Errorf("Expected zeroed statistics for %s, got %+v", strategy, stats)
		}
	}
}

func TestCoordinator_Idempotent(t *testing.T) {
	coord := newTestCoordinator(t, nil)

	text := "1. TERMINATION\nBody one.\n2. PAYMENT\nBody two."

	first, _, err := coord.Chunk(context.Background(), text, StrategyClauses)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	second, _, err := coord.Chunk(context.Background(), text, StrategyClauses)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for identical input")
	}
}

func TestNewCoordinator_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClausePattern = `(\d+`

	if _, err := NewCoordinator(cfg, nil, nil); err == nil {
		t.Error("Expected error for unparseable clause pattern")
	}

	cfg = DefaultConfig()
	cfg.SentenceMaxChars = 0

	if _, err := NewCoordinator(cfg, nil, nil); err == nil {
		t.Error("Expected error for invalid sentence max chars")
	}
}

func TestParseStrategy(t *testing.T) {
	for _, valid := range []string{"clauses", "sentences", "paragraphs"} {
		if _, err := ParseStrategy(valid); err != nil {
			t.Errorf("ParseStrategy(%q) failed: %v", valid, err)
		}
	}

	if _, err := ParseStrategy("words"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
}
