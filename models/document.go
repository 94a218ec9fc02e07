package models

import (
	"path/filepath"
	"strings"
)

// DocumentFormat is the declared format of an uploaded document
type DocumentFormat string

const (
	FormatTXT  DocumentFormat = "txt"
	FormatPDF  DocumentFormat = "pdf"
	FormatDOC  DocumentFormat = "doc"
	FormatDOCX DocumentFormat = "docx"
)

// Document is an uploaded resume awaiting text extraction
type Document struct {
	Filename string
	Format   DocumentFormat
	Data     []byte
}

// FormatFromFilename maps a file extension to a supported format
func FormatFromFilename(filename string) (DocumentFormat, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch DocumentFormat(ext) {
	case FormatTXT, FormatPDF, FormatDOC, FormatDOCX:
		return DocumentFormat(ext), true
	default:
		return "", false
	}
}

// ContentType returns the MIME type for the format
func (f DocumentFormat) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOC:
		return "application/msword"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatTXT:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
