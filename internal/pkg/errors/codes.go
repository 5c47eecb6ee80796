package errors

import "fmt"

// Code represents an error code with its message
type Code struct {
	Code    int    // Business error code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer = 1000
	ErrInvalidParams  = 1001
	ErrNotFound       = 1002
	ErrTimeout        = 1003
	ErrUnavailable    = 1004

	// Configuration errors (2000-2999)
	ErrConfigInvalid  = 2000
	ErrConfigNotFound = 2001

	// Document errors (3000-3999)
	ErrDocNotFound        = 3000
	ErrDocEmptyContent    = 3001
	ErrDocInvalidFileType = 3002
	ErrDocFileTooLarge    = 3003
	ErrDocExtractFailed   = 3004

	// Chunking errors (4000-4999)
	ErrChunkInvalidStrategy = 4000
	ErrChunkInvalidPattern  = 4001
	ErrChunkFailed          = 4002

	// Embedding errors (5000-5999)
	ErrEmbeddingFailed    = 5000
	ErrEmbeddingDimension = 5001
	ErrEmbeddingProvider  = 5002

	// Vector store errors (6000-6999)
	ErrVectorDBFailed      = 6000
	ErrVectorDBUnavailable = 6001
	ErrCollectionNotFound  = 6002
	ErrSearchFailed        = 6003
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, "Success"},

	// Common errors
	ErrInternalServer: {ErrInternalServer, "Internal error"},
	ErrInvalidParams:  {ErrInvalidParams, "Invalid parameters"},
	ErrNotFound:       {ErrNotFound, "Resource not found"},
	ErrTimeout:        {ErrTimeout, "Operation timed out"},
	ErrUnavailable:    {ErrUnavailable, "Service unavailable"},

	// Configuration errors
	ErrConfigInvalid:  {ErrConfigInvalid, "Invalid configuration"},
	ErrConfigNotFound: {ErrConfigNotFound, "Configuration file not found"},

	// Document errors
	ErrDocNotFound:        {ErrDocNotFound, "Document not found"},
	ErrDocEmptyContent:    {ErrDocEmptyContent, "Document has no extractable text"},
	ErrDocInvalidFileType: {ErrDocInvalidFileType, "Unsupported file type"},
	ErrDocFileTooLarge:    {ErrDocFileTooLarge, "File size exceeds limit"},
	ErrDocExtractFailed:   {ErrDocExtractFailed, "Text extraction failed"},

	// Chunking errors
	ErrChunkInvalidStrategy: {ErrChunkInvalidStrategy, "Unknown chunking strategy"},
	ErrChunkInvalidPattern:  {ErrChunkInvalidPattern, "Invalid clause pattern"},
	ErrChunkFailed:          {ErrChunkFailed, "Text chunking failed"},

	// Embedding errors
	ErrEmbeddingFailed:    {ErrEmbeddingFailed, "Embedding generation failed"},
	ErrEmbeddingDimension: {ErrEmbeddingDimension, "Embedding dimension mismatch"},
	ErrEmbeddingProvider:  {ErrEmbeddingProvider, "Embedding provider error"},

	// Vector store errors
	ErrVectorDBFailed:      {ErrVectorDBFailed, "Vector database operation failed"},
	ErrVectorDBUnavailable: {ErrVectorDBUnavailable, "Vector database unavailable"},
	ErrCollectionNotFound:  {ErrCollectionNotFound, "Collection not found"},
	ErrSearchFailed:        {ErrSearchFailed, "Vector search failed"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsSuccess checks if the code represents success
func IsSuccess(code int) bool {
	return code == Success
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
