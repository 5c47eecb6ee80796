package chunker

import "testing"

func TestCalculateStatistics(t *testing.T) {
	chunks := []*TextChunk{
		{Index: 0, Content: "aaaa"},       // 4
		{Index: 1, Content: "bbbbbbbb"},   // 8
		{Index: 2, Content: "cccccccccc"}, // 10
	}

	stats := CalculateStatistics(chunks, StrategyClauses)

	if stats.TotalChunks != 3 {
		t.Errorf("Expected 3 total chunks, got %d", stats.TotalChunks)
	}

	if stats.TotalCharacters != 22 {
		t.Errorf("Expected 22 total characters, got %d", stats.TotalCharacters)
	}

	if stats.MinChunkSize != 4 || stats.MaxChunkSize != 10 {
		t.Errorf("Unexpected min/max: %d/%d", stats.MinChunkSize, stats.MaxChunkSize)
	}

	want := 22.0 / 3.0
	if stats.AverageChunkSize != want {
		t.Errorf("Expected average %.4f, got %.4f", want, stats.AverageChunkSize)
	}

	if stats.StrategyUsed != StrategyClauses {
		t.Errorf("Expected strategy carried through, got %q", stats.StrategyUsed)
	}
}

func TestCalculateStatistics_Empty(t *testing.T) {
	// 空序列返回全零数值，不抛错、不除零
	stats := CalculateStatistics(nil, StrategySentences)

	if stats.TotalChunks != 0 || stats.TotalCharacters != 0 {
		t.Errorf("Expected zero counts, got %+v", stats)
	}

	if stats.AverageChunkSize != 0 || stats.MinChunkSize != 0 || stats.MaxChunkSize != 0 {
		t.Errorf("Expected zero sizes, got %+v", stats)
	}

	if stats.StrategyUsed != StrategySentences {
		t.Errorf("Expected strategy carried through, got %q", stats.StrategyUsed)
	}
}
