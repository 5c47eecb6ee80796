package types

import (
	"github.com/google/uuid"

	"github.com/lk2023060901/contract-parser-backend/internal/contract/chunker"
)

// ProcessResult 单个文档的处理结果
type ProcessResult struct {
	DocumentID uuid.UUID            `json:"document_id"`
	Filename   string               `json:"filename"`
	Strategy   chunker.Strategy     `json:"strategy"`
	ChunkCount int                  `json:"chunk_count"`
	TokenCount int                  `json:"token_count"`
	Stats      *chunker.Statistics  `json:"stats,omitempty"`
	Took       int64                `json:"took"` // 耗时（毫秒）
}

// BatchResult 批量处理结果
type BatchResult struct {
	Filename string         `json:"filename"`
	Result   *ProcessResult `json:"result,omitempty"`
	Err      error          `json:"-"`
}

// SystemStats 系统统计信息
type SystemStats struct {
	Collection string `json:"collection"`
	RowCount   int64  `json:"row_count"`
	Dimension  int    `json:"dimension"`
	Model      string `json:"model"`
}
