package milvus

import "time"

// DataType represents the data type of a field
type DataType int32

const (
	DataTypeNone        DataType = 0
	DataTypeBool        DataType = 1
	DataTypeInt64       DataType = 5
	DataTypeFloat       DataType = 6
	DataTypeDouble      DataType = 7
	DataTypeVarChar     DataType = 21
	DataTypeJSON        DataType = 23
	DataTypeFloatVector DataType = 100
)

// IsVector returns true if this is a vector type
func (dt DataType) IsVector() bool {
	return dt == DataTypeFloatVector
}

// String returns the string representation of DataType
func (dt DataType) String() string {
	switch dt {
	case DataTypeBool:
		return "Bool"
	case DataTypeInt64:
		return "Int64"
	case DataTypeFloat:
		return "Float"
	case DataTypeDouble:
		return "Double"
	case DataTypeVarChar:
		return "VarChar"
	case DataTypeJSON:
		return "JSON"
	case DataTypeFloatVector:
		return "FloatVector"
	default:
		return "Unknown"
	}
}

// IndexType represents the type of index
type IndexType string

const (
	IndexTypeFlat      IndexType = "FLAT"
	IndexTypeIVFFlat   IndexType = "IVF_FLAT"
	IndexTypeHNSW      IndexType = "HNSW"
	IndexTypeAutoIndex IndexType = "AUTOINDEX"
)

// String returns the string representation of IndexType
func (it IndexType) String() string {
	return string(it)
}

// MetricType represents the distance metric type
type MetricType string

const (
	MetricTypeL2     MetricType = "L2"
	MetricTypeIP     MetricType = "IP"
	MetricTypeCosine MetricType = "COSINE"
)

// String returns the string representation of MetricType
func (mt MetricType) String() string {
	return string(mt)
}

// Constants for default values
const (
	DefaultTimeout          time.Duration = 30 * time.Second
	DefaultRetries                        = 3
	DefaultRetryDelay                     = time.Second
	DefaultNList                          = 128
	MaxCollectionNameLength               = 255
	MaxFieldNameLength                    = 255
)
