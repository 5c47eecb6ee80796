package milvus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVectorDimension(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
	}

	assert.NoError(t, ValidateVectorDimension(vectors, 3))
	assert.Error(t, ValidateVectorDimension(vectors, 4))

	mixed := [][]float32{{1, 2, 3}, {4, 5}}
	assert.Error(t, ValidateVectorDimension(mixed, 3))
}

func TestNormalizeVector(t *testing.T) {
	vec := []float32{3, 4}
	normalized := NormalizeVector(vec)

	var norm float64
	for _, v := range normalized {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)

	// 零向量保持不变
	zero := []float32{0, 0, 0}
	assert.Equal(t, zero, NormalizeVector(zero))
}

func TestNormalizeVectors(t *testing.T) {
	vectors := [][]float32{{3, 4}, {0, 5}}
	normalized := NormalizeVectors(vectors)

	require.Len(t, normalized, 2)
	assert.InDelta(t, 0.6, float64(normalized[0][0]), 1e-6)
	assert.InDelta(t, 1.0, float64(normalized[1][1]), 1e-6)
}

func TestBuildExprIn(t *testing.T) {
	expr := BuildExprIn("document_id", []interface{}{"a", "b"})
	assert.Equal(t, `document_id in ["a", "b"]`, expr)

	expr = BuildExprIn("chunk_index", []interface{}{1, 2, 3})
	assert.Equal(t, "chunk_index in [1, 2, 3]", expr)

	assert.Equal(t, "", BuildExprIn("id", nil))
}

func TestChunkSlice(t *testing.T) {
	data := []int{1, 2, 3, 4, 5}

	chunks := ChunkSlice(data, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, []int{1, 2}, chunks[0])
	assert.Equal(t, []int{5}, chunks[2])

	// 非法大小返回原切片
	chunks = ChunkSlice(data, 0)
	require.Len(t, chunks, 1)
	assert.Equal(t, data, chunks[0])
}

func TestBuildColumns(t *testing.T) {
	intCol := BuildInt64Column("chunk_index", []int64{0, 1})
	assert.Equal(t, "chunk_index", intCol.Name())
	assert.Equal(t, 2, intCol.Len())

	strCol := BuildVarCharColumn("content", []string{"a", "b", "c"})
	assert.Equal(t, 3, strCol.Len())

	vecCol := BuildFloatVectorColumn("embedding", 2, [][]float32{{1, 2}, {3, 4}})
	assert.Equal(t, 2, vecCol.Len())

	jsonCol := BuildJSONColumn("metadata", [][]byte{[]byte(`{"a":1}`)})
	assert.Equal(t, 1, jsonCol.Len())
}
