package milvus

import (
	"context"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"
)

// IndexOptions 索引创建选项
type IndexOptions struct {
	IndexType  IndexType
	MetricType MetricType
	NList      int // IVF 系列索引的聚类数
}

// CreateIndex 创建索引
func (c *Client) CreateIndex(ctx context.Context, collectionName, fieldName string, opts *IndexOptions) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	if collectionName == "" {
		return ErrInvalidCollectionName
	}

	if fieldName == "" {
		return ErrInvalidFieldName
	}

	if opts == nil {
		opts = &IndexOptions{IndexType: IndexTypeIVFFlat, MetricType: MetricTypeIP}
	}

	var idx index.Index
	switch opts.IndexType {
	case IndexTypeFlat:
		idx = index.NewFlatIndex(toEntityMetricType(opts.MetricType))
	case IndexTypeIVFFlat:
		nlist := opts.NList
		if nlist <= 0 {
			nlist = DefaultNList
		}
		idx = index.NewIvfFlatIndex(toEntityMetricType(opts.MetricType), nlist)
	case IndexTypeAutoIndex:
		idx = index.NewAutoIndex(toEntityMetricType(opts.MetricType))
	default:
		return ErrInvalidIndexType
	}

	createOpt := milvusclient.NewCreateIndexOption(collectionName, fieldName, idx)

	err := c.execWithRetry(ctx, "CreateIndex", func(ctx context.Context) error {
		task, err := c.client.CreateIndex(ctx, createOpt)
		if err != nil {
			return err
		}
		return task.Await(ctx)
	})

	if err != nil {
		c.logger.Error("failed to create index",
			zap.String("collection", collectionName),
			zap.String("field", fieldName),
			zap.Error(err))
		return WrapError("CreateIndex", err, collectionName, fieldName)
	}

	c.logger.Info("index created successfully",
		zap.String("collection", collectionName),
		zap.String("field", fieldName))

	return nil
}

// toEntityMetricType 转换为 entity.MetricType
func toEntityMetricType(mt MetricType) entity.MetricType {
	switch mt {
	case MetricTypeL2:
		return entity.L2
	case MetricTypeIP:
		return entity.IP
	case MetricTypeCosine:
		return entity.COSINE
	default:
		return entity.IP
	}
}
