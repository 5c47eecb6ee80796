package milvus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with collection and field",
			err:  &Error{Op: "Search", Collection: "contracts", Field: "embedding", Err: errors.New("boom")},
			want: "milvus: Search failed for collection=contracts, field=embedding: boom",
		},
		{
			name: "with collection only",
			err:  &Error{Op: "Insert", Collection: "contracts", Err: errors.New("boom")},
			want: "milvus: Insert failed for collection=contracts: boom",
		},
		{
			name: "bare operation",
			err:  &Error{Op: "Ping", Err: errors.New("boom")},
			want: "milvus: Ping failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := WrapError("Search", inner, "contracts", "")

	assert.True(t, errors.Is(err, inner))
}

func TestWrapError_NilError(t *testing.T) {
	assert.Nil(t, WrapError("Search", nil, "contracts", ""))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrCollectionNotFound))
	assert.True(t, IsNotFound(errors.New("collection does not exist")))
	assert.False(t, IsNotFound(errors.New("permission denied")))
	assert.False(t, IsNotFound(nil))
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, IsAlreadyExists(ErrCollectionExists))
	assert.True(t, IsAlreadyExists(errors.New("duplicate entry")))
	assert.False(t, IsAlreadyExists(nil))
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(ErrOperationTimeout))
	assert.True(t, IsTimeout(errors.New("context deadline exceeded")))
	assert.False(t, IsTimeout(errors.New("not found")))
	assert.False(t, IsTimeout(nil))
}

func TestIsConnectionFailed(t *testing.T) {
	assert.True(t, IsConnectionFailed(ErrConnectionFailed))
	assert.True(t, IsConnectionFailed(errors.New("failed to dial target")))
	assert.False(t, IsConnectionFailed(errors.New("schema mismatch")))
	assert.False(t, IsConnectionFailed(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(ErrOperationTimeout))
	assert.True(t, isRetryable(ErrConnectionFailed))
	assert.False(t, isRetryable(ErrInvalidSchema))
	assert.False(t, isRetryable(nil))
}
