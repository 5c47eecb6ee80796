package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/milvus-io/milvus/client/v2/column"
	"go.uber.org/zap"

	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/logger"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/milvus"
)

const (
	fieldID         = "id"
	fieldDocumentID = "document_id"
	fieldChunkIndex = "chunk_index"
	fieldContent    = "content"
	fieldEmbedding  = "embedding"
	fieldMetadata   = "metadata"

	maxContentLength = 65535
	maxIDLength      = 64
	insertBatchSize  = 256

	countField = "count(*)"
)

// MilvusStore Milvus 向量存储实现
type MilvusStore struct {
	client     *milvus.Client
	collection string
	dimension  int
	logger     *logger.Logger
}

// NewMilvusStore 创建 Milvus 向量存储
func NewMilvusStore(client *milvus.Client, collection string, dimension int, lgr *logger.Logger) *MilvusStore {
	if lgr == nil {
		lgr = logger.L()
	}
	return &MilvusStore{
		client:     client,
		collection: collection,
		dimension:  dimension,
		logger:     lgr,
	}
}

// Collection 返回集合名称
func (s *MilvusStore) Collection() string {
	return s.collection
}

// EnsureCollection 确保集合存在并已加载
func (s *MilvusStore) EnsureCollection(ctx context.Context) error {
	exists, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		schema, err := milvus.NewSchemaBuilder(s.collection, "Contract chunk vectors").
			AddVarCharField(fieldID, maxIDLength, true).
			AddVarCharField(fieldDocumentID, maxIDLength, false).
			AddInt64Field(fieldChunkIndex, false, false).
			AddVarCharField(fieldContent, maxContentLength, false).
			AddFloatVectorField(fieldEmbedding, s.dimension).
			AddJSONField(fieldMetadata).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build schema: %w", err)
		}

		if err := s.client.CreateCollection(ctx, schema); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}

		// IP 度量配合归一化向量等价于余弦相似度
		indexOpts := &milvus.IndexOptions{
			IndexType:  milvus.IndexTypeIVFFlat,
			MetricType: milvus.MetricTypeIP,
			NList:      1024,
		}

		if err := s.client.CreateIndex(ctx, s.collection, fieldEmbedding, indexOpts); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}

		s.logger.Info("milvus collection created",
			zap.String("collection", s.collection),
			zap.Int("dimension", s.dimension))
	}

	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	return nil
}

// UpsertChunks 写入分块向量
func (s *MilvusStore) UpsertChunks(ctx context.Context, chunks []*StoredChunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to upsert")
	}

	for _, batch := range milvus.ChunkSlice(chunks, insertBatchSize) {
		if err := s.upsertBatch(ctx, batch); err != nil {
			return err
		}
	}

	if err := s.client.Flush(ctx, s.collection, false); err != nil {
		s.logger.Warn("failed to flush collection after upsert",
			zap.String("collection", s.collection),
			zap.Error(err))
	}

	s.logger.Info("chunks upserted successfully",
		zap.String("collection", s.collection),
		zap.Int("count", len(chunks)))

	return nil
}

func (s *MilvusStore) upsertBatch(ctx context.Context, chunks []*StoredChunk) error {
	ids := make([]string, len(chunks))
	docIDs := make([]string, len(chunks))
	indexes := make([]int64, len(chunks))
	contents := make([]string, len(chunks))
	vectors := make([][]float32, len(chunks))
	metadatas := make([][]byte, len(chunks))

	for i, c := range chunks {
		if len(c.Embedding) != s.dimension {
			return fmt.Errorf("chunk %s: embedding dimension %d, expected %d", c.ID, len(c.Embedding), s.dimension)
		}

		meta := c.Metadata
		if meta == nil {
			meta = map[string]interface{}{}
		}
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("chunk %s: failed to marshal metadata: %w", c.ID, err)
		}

		ids[i] = c.ID
		docIDs[i] = c.DocumentID
		indexes[i] = c.ChunkIndex
		contents[i] = truncate(c.Content, maxContentLength)
		vectors[i] = milvus.NormalizeVector(c.Embedding)
		metadatas[i] = raw
	}

	data := []column.Column{
		milvus.BuildVarCharColumn(fieldID, ids),
		milvus.BuildVarCharColumn(fieldDocumentID, docIDs),
		milvus.BuildInt64Column(fieldChunkIndex, indexes),
		milvus.BuildVarCharColumn(fieldContent, contents),
		milvus.BuildFloatVectorColumn(fieldEmbedding, s.dimension, vectors),
		milvus.BuildJSONColumn(fieldMetadata, metadatas),
	}

	if _, err := s.client.Upsert(ctx, s.collection, data); err != nil {
		return fmt.Errorf("failed to upsert chunks: %w", err)
	}

	return nil
}

// Search 向量检索
func (s *MilvusStore) Search(ctx context.Context, vector []float32, req *ctypes.SearchRequest) ([]*ctypes.ScoredChunk, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("query vector dimension %d, expected %d", len(vector), s.dimension)
	}

	topK := req.TopK
	if topK <= 0 {
		topK = 5
	}

	opts := &milvus.SearchOptions{
		OutputFields: []string{fieldDocumentID, fieldChunkIndex, fieldContent, fieldMetadata},
		Expr:         buildFilterExpr(req),
	}

	normalized := milvus.NormalizeVector(vector)

	results, err := s.client.Search(ctx, s.collection, [][]float32{normalized}, fieldEmbedding, topK, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	if len(results) == 0 {
		return []*ctypes.ScoredChunk{}, nil
	}

	chunks := make([]*ctypes.ScoredChunk, 0, len(results[0]))
	for _, hit := range results[0] {
		if req.MinScore > 0 && hit.Score < req.MinScore {
			continue
		}

		chunk := &ctypes.ScoredChunk{
			Score:    hit.Score,
			Metadata: map[string]interface{}{},
		}

		if id, ok := hit.ID.(string); ok {
			chunk.ID = id
		}
		if docID, ok := hit.Fields[fieldDocumentID].(string); ok {
			chunk.DocumentID = docID
		}
		if idx, ok := hit.Fields[fieldChunkIndex].(int64); ok {
			chunk.ChunkIndex = int(idx)
		}
		if content, ok := hit.Fields[fieldContent].(string); ok {
			chunk.Content = content
		}
		if raw, ok := hit.Fields[fieldMetadata].([]byte); ok {
			var meta map[string]interface{}
			if err := json.Unmarshal(raw, &meta); err == nil {
				chunk.Metadata = meta
			}
		}

		chunks = append(chunks, chunk)
	}

	s.logger.Info("vector search completed",
		zap.String("collection", s.collection),
		zap.Int("results", len(chunks)))

	return chunks, nil
}

// DeleteDocument 删除某个文档的全部分块
func (s *MilvusStore) DeleteDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}

	expr := fmt.Sprintf("%s == %q", fieldDocumentID, documentID)
	if err := s.client.Delete(ctx, s.collection, expr); err != nil {
		return fmt.Errorf("failed to delete document chunks: %w", err)
	}

	s.logger.Info("document chunks deleted",
		zap.String("collection", s.collection),
		zap.String("document_id", documentID))

	return nil
}

// Count 返回集合中的分块数量
//
// 通过 count(*) 查询统计，未 flush 的数据也计入。
func (s *MilvusStore) Count(ctx context.Context) (int64, error) {
	results, err := s.client.Query(ctx, s.collection, "", &milvus.QueryOptions{
		OutputFields: []string{countField},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}

	return countFromResults(results)
}

// Clear 清空集合（删除后重建）
func (s *MilvusStore) Clear(ctx context.Context) error {
	exists, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if exists {
		if err := s.client.DropCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("failed to drop collection: %w", err)
		}
	}

	return s.EnsureCollection(ctx)
}

// buildFilterExpr 根据检索请求构建 Milvus 过滤表达式。
// 无标题分块的 metadata 中不存在 heading 键，按标题过滤时天然不会命中。
func buildFilterExpr(req *ctypes.SearchRequest) string {
	var parts []string

	if req.DocumentID != "" {
		parts = append(parts, fmt.Sprintf("%s == %q", fieldDocumentID, req.DocumentID))
	}

	if req.Heading != "" {
		parts = append(parts, fmt.Sprintf(`%s["heading"] == %q`, fieldMetadata, req.Heading))
	}

	return strings.Join(parts, " && ")
}

// countFromResults 从 count(*) 查询结果中提取数量
func countFromResults(results []milvus.QueryResult) (int64, error) {
	if len(results) == 0 {
		return 0, nil
	}

	count, ok := results[0].Fields[countField].(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count result: %v", results[0].Fields[countField])
	}

	return count, nil
}

// truncate 截断字符串，避免切断多字节字符
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}
