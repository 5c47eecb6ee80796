package types

// SearchRequest 搜索请求
type SearchRequest struct {
	Query      string  `json:"query"`
	TopK       int     `json:"top_k"`
	MinScore   float32 `json:"min_score,omitempty"`
	DocumentID string  `json:"document_id,omitempty"` // 限定在某个文档内检索
	Heading    string  `json:"heading,omitempty"`     // 按条款标题过滤
}

// ScoredChunk 带分数的分块（用于搜索结果）
type ScoredChunk struct {
	ID         string                 `json:"id"`
	DocumentID string                 `json:"document_id"`
	ChunkIndex int                    `json:"chunk_index"`
	Content    string                 `json:"content"`
	Score      float32                `json:"score"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Heading 返回分块的条款标题，没有标题时返回空串
func (c *ScoredChunk) Heading() string {
	if c.Metadata == nil {
		return ""
	}
	if h, ok := c.Metadata["heading"].(string); ok {
		return h
	}
	return ""
}

// SearchResponse 搜索响应
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []*ScoredChunk `json:"results"`
	Total   int            `json:"total"`
	Took    int64          `json:"took"` // 耗时（毫秒）
}
