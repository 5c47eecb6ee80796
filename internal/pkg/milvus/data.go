package milvus

import (
	"context"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"
)

// Upsert 更新或插入数据，返回写入的行数
func (c *Client) Upsert(ctx context.Context, collectionName string, data []column.Column) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return 0, ErrClientClosed
	}

	if collectionName == "" {
		return 0, ErrInvalidCollectionName
	}

	if len(data) == 0 {
		return 0, ErrInvalidData
	}

	upsertOpt := milvusclient.NewColumnBasedInsertOption(collectionName, data...)

	var result milvusclient.UpsertResult
	err := c.execWithRetry(ctx, "Upsert", func(ctx context.Context) error {
		var err error
		result, err = c.client.Upsert(ctx, upsertOpt)
		return err
	})

	if err != nil {
		c.logger.Error("failed to upsert data",
			zap.String("collection", collectionName),
			zap.Error(err))
		return 0, WrapError("Upsert", err, collectionName, "")
	}

	c.logger.Info("data upserted successfully",
		zap.String("collection", collectionName),
		zap.Int64("count", result.UpsertCount))

	return result.UpsertCount, nil
}

// Delete 按表达式删除数据
func (c *Client) Delete(ctx context.Context, collectionName, expr string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	if collectionName == "" {
		return ErrInvalidCollectionName
	}

	if expr == "" {
		return ErrInvalidExpression
	}

	deleteOpt := milvusclient.NewDeleteOption(collectionName).WithExpr(expr)

	err := c.execWithRetry(ctx, "Delete", func(ctx context.Context) error {
		_, err := c.client.Delete(ctx, deleteOpt)
		return err
	})

	if err != nil {
		c.logger.Error("failed to delete data",
			zap.String("collection", collectionName),
			zap.String("expression", expr),
			zap.Error(err))
		return WrapError("Delete", err, collectionName, "")
	}

	c.logger.Info("data deleted successfully",
		zap.String("collection", collectionName),
		zap.String("expression", expr))

	return nil
}

// Flush 刷新数据到持久化存储
func (c *Client) Flush(ctx context.Context, collectionName string, async bool) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	if collectionName == "" {
		return ErrInvalidCollectionName
	}

	err := c.execWithRetry(ctx, "Flush", func(ctx context.Context) error {
		task, err := c.client.Flush(ctx, milvusclient.NewFlushOption(collectionName))
		if err != nil {
			return err
		}

		if !async {
			return task.Await(ctx)
		}

		return nil
	})

	if err != nil {
		c.logger.Error("failed to flush collection",
			zap.String("collection", collectionName),
			zap.Error(err))
		return WrapError("Flush", err, collectionName, "")
	}

	c.logger.Info("collection flushed successfully",
		zap.String("collection", collectionName),
		zap.Bool("async", async))

	return nil
}
