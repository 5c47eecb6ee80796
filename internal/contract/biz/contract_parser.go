package biz

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lk2023060901/contract-parser-backend/internal/conf"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/chunker"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/embedding"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/extractor"
	"github.com/lk2023060901/contract-parser-backend/internal/contract/storage"
	ctypes "github.com/lk2023060901/contract-parser-backend/internal/contract/types"
	apperrors "github.com/lk2023060901/contract-parser-backend/internal/pkg/errors"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/logger"
	"github.com/lk2023060901/contract-parser-backend/internal/pkg/workerpool"
)

// ContractParser 合同解析流水线：提取 → 分块 → 向量化 → 入库 → 检索
type ContractParser struct {
	extractors  *extractor.Factory
	coordinator *chunker.Coordinator
	embedder    embedding.Embedder
	store       storage.VectorStore
	pool        *workerpool.Pool
	searchCfg   *conf.SearchConfig
	logger      *logger.Logger
}

// NewContractParser 创建合同解析器
func NewContractParser(
	extractors *extractor.Factory,
	coordinator *chunker.Coordinator,
	embedder embedding.Embedder,
	store storage.VectorStore,
	pool *workerpool.Pool,
	searchCfg *conf.SearchConfig,
	lgr *logger.Logger,
) (*ContractParser, error) {
	if extractors == nil || coordinator == nil || embedder == nil || store == nil {
		return nil, apperrors.New(apperrors.ErrInvalidParams, "all pipeline components are required")
	}

	if searchCfg == nil {
		searchCfg = &conf.SearchConfig{Collection: "contract_chunks", TopK: 5}
	}

	if lgr == nil {
		lgr = logger.L()
	}

	return &ContractParser{
		extractors:  extractors,
		coordinator: coordinator,
		embedder:    embedder,
		store:       store,
		pool:        pool,
		searchCfg:   searchCfg,
		logger:      lgr,
	}, nil
}

// Init 初始化向量存储
func (p *ContractParser) Init(ctx context.Context) error {
	return p.store.EnsureCollection(ctx)
}

// ProcessFile 处理单个合同文件
func (p *ContractParser) ProcessFile(ctx context.Context, path string, strategy chunker.Strategy) (*ctypes.ProcessResult, error) {
	doc, err := p.loadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	return p.ProcessDocument(ctx, doc, strategy)
}

// loadFile 读取并提取文件内容
func (p *ContractParser) loadFile(ctx context.Context, path string) (*ctypes.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDocNotFound, path)
	}

	fileType := ctypes.FileTypeFromPath(path)
	if !fileType.Valid() {
		return nil, apperrors.NewInvalidFileTypeError(filepath.Ext(path))
	}

	ext, err := p.extractors.ExtractorFor(fileType)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDocInvalidFileType, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDocNotFound, path)
	}
	defer f.Close()

	extracted, err := ext.Extract(ctx, f)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDocExtractFailed, path)
	}

	p.logger.Info("document text extracted",
		zap.String("path", path),
		zap.String("file_type", fileType.String()),
		zap.Int("text_length", len(extracted.Text)))

	return &ctypes.Document{
		ID:        uuid.New(),
		Filename:  filepath.Base(path),
		FileType:  fileType,
		FileSize:  info.Size(),
		Text:      extracted.Text,
		Metadata:  extracted.Metadata,
		CreatedAt: time.Now(),
	}, nil
}

// ProcessDocument 处理已提取的文档
func (p *ContractParser) ProcessDocument(ctx context.Context, doc *ctypes.Document, strategy chunker.Strategy) (*ctypes.ProcessResult, error) {
	start := time.Now()

	if strings.TrimSpace(doc.Text) == "" {
		return nil, apperrors.NewEmptyContentError(doc.Filename)
	}

	chunks, stats, err := p.coordinator.Chunk(ctx, doc.Text, strategy)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrChunkFailed, doc.Filename)
	}

	if len(chunks) == 0 {
		return nil, apperrors.NewEmptyContentError(doc.Filename)
	}

	p.logger.Info("document chunked",
		zap.String("document_id", doc.ID.String()),
		zap.String("strategy", string(stats.StrategyUsed)),
		zap.Int("chunks", len(chunks)))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	embeddings, err := p.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrEmbeddingFailed, doc.Filename)
	}

	if len(embeddings) != len(chunks) {
		return nil, apperrors.New(apperrors.ErrEmbeddingFailed,
			fmt.Sprintf("expected %d embeddings, got %d", len(chunks), len(embeddings)))
	}

	stored := make([]*storage.StoredChunk, len(chunks))
	tokenCount := 0
	for i, c := range chunks {
		metadata := make(map[string]interface{}, len(c.Metadata)+1)
		for k, v := range c.Metadata {
			metadata[k] = v
		}
		metadata["filename"] = doc.Filename

		stored[i] = &storage.StoredChunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID.String(),
			ChunkIndex: int64(c.Index),
			Content:    c.Content,
			Embedding:  embeddings[i],
			Metadata:   metadata,
		}

		tokenCount += c.TokenCount
	}

	if err := p.store.UpsertChunks(ctx, stored); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrVectorDBFailed, doc.Filename)
	}

	result := &ctypes.ProcessResult{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		Strategy:   stats.StrategyUsed,
		ChunkCount: len(chunks),
		TokenCount: tokenCount,
		Stats:      stats,
		Took:       time.Since(start).Milliseconds(),
	}

	p.logger.Info("document processed",
		zap.String("document_id", doc.ID.String()),
		zap.String("filename", doc.Filename),
		zap.Int("chunks", result.ChunkCount),
		zap.Int("tokens", result.TokenCount),
		zap.Int64("took_ms", result.Took))

	return result, nil
}

// BatchProcess 批量处理合同文件，通过 worker pool 并发执行
func (p *ContractParser) BatchProcess(ctx context.Context, paths []string, strategy chunker.Strategy) []*ctypes.BatchResult {
	results := make([]*ctypes.BatchResult, len(paths))

	if p.pool == nil {
		for i, path := range paths {
			result, err := p.ProcessFile(ctx, path, strategy)
			results[i] = &ctypes.BatchResult{Filename: path, Result: result, Err: err}
		}
		return results
	}

	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)

		err := p.pool.Submit(func() {
			defer wg.Done()
			result, err := p.ProcessFile(ctx, path, strategy)
			results[i] = &ctypes.BatchResult{Filename: path, Result: result, Err: err}
		})
		if err != nil {
			wg.Done()
			results[i] = &ctypes.BatchResult{Filename: path, Err: err}
		}
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r != nil && r.Err == nil {
			succeeded++
		}
	}

	p.logger.Info("batch processing complete",
		zap.Int("total", len(paths)),
		zap.Int("succeeded", succeeded))

	return results
}

// Search 使用自然语言检索合同条款
func (p *ContractParser) Search(ctx context.Context, req *ctypes.SearchRequest) (*ctypes.SearchResponse, error) {
	start := time.Now()

	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.NewInvalidParamsError("query is required")
	}

	if req.TopK <= 0 {
		req.TopK = p.searchCfg.TopK
	}
	if req.MinScore <= 0 && p.searchCfg.MinScore > 0 {
		req.MinScore = float32(p.searchCfg.MinScore)
	}

	vector, err := p.embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrEmbeddingFailed, req.Query)
	}

	results, err := p.store.Search(ctx, vector, req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrSearchFailed, req.Query)
	}

	p.logger.Info("search complete",
		zap.String("query", req.Query),
		zap.Int("results", len(results)))

	return &ctypes.SearchResponse{
		Query:   req.Query,
		Results: results,
		Total:   len(results),
		Took:    time.Since(start).Milliseconds(),
	}, nil
}

// Stats 获取系统统计信息
func (p *ContractParser) Stats(ctx context.Context) (*ctypes.SystemStats, error) {
	count, err := p.store.Count(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrVectorDBFailed)
	}

	return &ctypes.SystemStats{
		Collection: p.searchCfg.Collection,
		RowCount:   count,
		Dimension:  p.embedder.Dimension(),
		Model:      p.embedder.Model(),
	}, nil
}

// DeleteDocument 删除某个文档的全部分块
func (p *ContractParser) DeleteDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return apperrors.NewInvalidParamsError("document id is required")
	}

	if err := p.store.DeleteDocument(ctx, documentID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrVectorDBFailed, documentID)
	}

	return nil
}

// Clear 清空全部合同数据
func (p *ContractParser) Clear(ctx context.Context) error {
	p.logger.Warn("clearing all contract data")

	if err := p.store.Clear(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrVectorDBFailed)
	}

	return nil
}
