package chunker

// Statistics 分块统计信息（按需计算，不持久化）
type Statistics struct {
	TotalChunks      int      `json:"total_chunks"`
	TotalCharacters  int      `json:"total_characters"`
	AverageChunkSize float64  `json:"average_chunk_size"`
	MinChunkSize     int      `json:"min_chunk_size"`
	MaxChunkSize     int      `json:"max_chunk_size"`
	StrategyUsed     Strategy `json:"strategy_used"`
}

// CalculateStatistics 计算分块统计信息
//
// 空序列返回全零数值，不会除零。
func CalculateStatistics(chunks []*TextChunk, strategy Strategy) *Statistics {
	stats := &Statistics{StrategyUsed: strategy}

	if len(chunks) == 0 {
		return stats
	}

	minSize := len(chunks[0].Content)
	maxSize := minSize
	total := 0

	for _, ch := range chunks {
		size := len(ch.Content)
		total += size
		if size < minSize {
			minSize = size
		}
		if size > maxSize {
			maxSize = size
		}
	}

	stats.TotalChunks = len(chunks)
	stats.TotalCharacters = total
	stats.AverageChunkSize = float64(total) / float64(len(chunks))
	stats.MinChunkSize = minSize
	stats.MaxChunkSize = maxSize

	return stats
}
