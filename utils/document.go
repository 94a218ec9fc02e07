package utils

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog"

	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/models"
)

var errInvalidUTF8 = errors.New("text is not valid UTF-8")

// DocumentExtractor extracts plain text from uploaded documents
// It never fails: unreadable input yields an empty string
type DocumentExtractor struct {
	logger zerolog.Logger
}

// NewDocumentExtractor creates a new document extractor
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{
		logger: logger.Component("extractor"),
	}
}

// ExtractText extracts text from a document based on its declared format
func (e *DocumentExtractor) ExtractText(doc models.Document) (text string) {
	// the PDF parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Interface("panic", r).
				Str("format", string(doc.Format)).
				Str("filename", doc.Filename).
				Msg("text extraction aborted")
			text = ""
		}
	}()

	var err error
	switch doc.Format {
	case models.FormatTXT:
		text, err = extractPlainText(doc.Data)
	case models.FormatPDF:
		text, err = extractPDFText(doc.Data)
	case models.FormatDOCX:
		text, err = extractDocxText(doc.Data)
	default:
		e.logger.Warn().
			Str("format", string(doc.Format)).
			Str("filename", doc.Filename).
			Msg("no text extractor for format")
		return ""
	}

	if err != nil {
		e.logger.Error().
			Err(err).
			Str("format", string(doc.Format)).
			Str("filename", doc.Filename).
			Msg("text extraction failed")
		return ""
	}
	return text
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

// extractPDFText concatenates the text layer of every page
// Pages without a text layer contribute nothing
func extractPDFText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent())
}

// paragraphText walks word/document.xml and emits each paragraph's
// run text followed by a newline
func paragraphText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var out, para strings.Builder
	inText := false
	runDepth := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para.Reset()
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if runDepth > 0 {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					para.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				out.WriteString(para.String())
				out.WriteByte('\n')
				para.Reset()
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	return out.String(), nil
}

// IsSupportedFormat checks if the file format is supported
func (e *DocumentExtractor) IsSupportedFormat(filename string) bool {
	_, ok := models.FormatFromFilename(filename)
	return ok
}
