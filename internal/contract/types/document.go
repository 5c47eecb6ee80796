package types

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileType 文件类型
type FileType string

const (
	FileTypePdf  FileType = "pdf"
	FileTypeTxt  FileType = "txt"
	FileTypeMd   FileType = "md"
	FileTypeJson FileType = "json"
)

// Valid 检查文件类型是否有效
func (ft FileType) Valid() bool {
	switch ft {
	case FileTypePdf, FileTypeTxt, FileTypeMd, FileTypeJson:
		return true
	}
	return false
}

// String 返回字符串表示
func (ft FileType) String() string {
	return string(ft)
}

// FileTypeFromPath 根据文件扩展名推断文件类型
func FileTypeFromPath(path string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "markdown":
		return FileTypeMd
	default:
		return FileType(ext)
	}
}

// Document 合同文档业务对象
type Document struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	FileType FileType  `json:"file_type"`
	FileSize int64     `json:"file_size"`

	// 提取出的纯文本
	Text string `json:"-"`

	// 提取阶段产生的元数据（页数等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ExtractedDocument 文本提取结果
type ExtractedDocument struct {
	Text     string                 `json:"-"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
