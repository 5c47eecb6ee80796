package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	err := New(ErrDocNotFound, "contract.pdf")
	assert.Equal(t, ErrDocNotFound, err.Code)
	assert.Contains(t, err.Error(), "contract.pdf")
	assert.True(t, Is(err, ErrDocNotFound))
	assert.False(t, Is(err, ErrDocEmptyContent))
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrVectorDBUnavailable)

	assert.Equal(t, ErrVectorDBUnavailable, err.Code)
	assert.ErrorIs(t, err, cause)

	// 已是 AppError 时保留原始错误码
	rewrapped := Wrap(err, ErrInternalServer, "retry failed")
	assert.Equal(t, ErrVectorDBUnavailable, rewrapped.Code)
	assert.Equal(t, "retry failed", rewrapped.Details)

	assert.Nil(t, Wrap(nil, ErrInternalServer))
}

func TestExtractCode(t *testing.T) {
	assert.Equal(t, ErrChunkFailed, ExtractCode(New(ErrChunkFailed)))
	assert.Equal(t, ErrInternalServer, ExtractCode(stderrors.New("plain")))
}

func TestGetMessage(t *testing.T) {
	assert.Equal(t, "Document not found", GetMessage(ErrDocNotFound))
	assert.NotEmpty(t, GetMessage(999999))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, ErrDocEmptyContent, NewEmptyContentError("empty.txt").Code)
	assert.Equal(t, ErrDocInvalidFileType, NewInvalidFileTypeError(".docx").Code)
	assert.Equal(t, ErrInvalidParams, NewInvalidParamsError("bad input").Code)
	assert.Equal(t, ErrNotFound, NewNotFoundError("document").Code)
}
