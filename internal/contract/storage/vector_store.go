package storage

import (
	"context"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
)

// StoredChunk 待入库的分块
type StoredChunk struct {
	ID         string
	DocumentID string
	ChunkIndex int64
	Content    string
	Embedding  []float32
	Metadata   map[string]interface{}
}

// VectorStore 向量存储接口
type VectorStore interface {
	// EnsureCollection 确保集合存在并已加载，不存在时创建
	EnsureCollection(ctx context.Context) error

	// UpsertChunks 写入分块向量，已存在的 ID 被覆盖
	UpsertChunks(ctx context.Context, chunks []*StoredChunk) error

	// Search 向量检索
	Search(ctx context.Context, vector []float32, req *ctypes.SearchRequest) ([]*ctypes.ScoredChunk, error)

	// DeleteDocument 删除某个文档的全部分块
	DeleteDocument(ctx context.Context, documentID string) error

	// Count 返回集合中的分块数量
	Count(ctx context.Context) (int64, error)

	// Clear 清空集合
	Clear(ctx context.Context) error
}
