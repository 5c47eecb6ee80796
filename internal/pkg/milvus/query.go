package milvus

import (
	"context"

	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"
)

// QueryOptions 查询选项
type QueryOptions struct {
	OutputFields []string
	Limit        int
	Offset       int
}

// QueryResult 查询结果
type QueryResult struct {
	Fields map[string]interface{}
}

// Query 标量查询
//
// expr 为空时查询全部数据（如 count(*) 统计）。
func (c *Client) Query(ctx context.Context, collectionName, expr string, opts *QueryOptions) ([]QueryResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrClientClosed
	}

	if collectionName == "" {
		return nil, ErrInvalidCollectionName
	}

	queryOpt := milvusclient.NewQueryOption(collectionName)

	if expr != "" {
		queryOpt.WithFilter(expr)
	}

	if opts != nil {
		if len(opts.OutputFields) > 0 {
			queryOpt.WithOutputFields(opts.OutputFields...)
		}
		if opts.Limit > 0 {
			queryOpt.WithLimit(opts.Limit)
		}
		if opts.Offset > 0 {
			queryOpt.WithOffset(opts.Offset)
		}
	}

	var resultSet milvusclient.ResultSet
	err := c.execWithRetry(ctx, "Query", func(ctx context.Context) error {
		var err error
		resultSet, err = c.client.Query(ctx, queryOpt)
		return err
	})

	if err != nil {
		c.logger.Error("failed to query",
			zap.String("collection", collectionName),
			zap.String("expression", expr),
			zap.Error(err))
		return nil, WrapError("Query", err, collectionName, "")
	}

	results := make([]QueryResult, resultSet.ResultCount)
	for i := 0; i < resultSet.ResultCount; i++ {
		result := QueryResult{
			Fields: make(map[string]interface{}),
		}

		for _, col := range resultSet.Fields {
			if col != nil {
				val, _ := col.Get(i)
				result.Fields[col.Name()] = val
			}
		}

		results[i] = result
	}

	return results, nil
}
