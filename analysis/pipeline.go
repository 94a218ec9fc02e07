package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/models"
	"github.com/resumeinsight/backend/storage"
)

// ErrExtractionEmpty is returned when no text could be recovered from a document
var ErrExtractionEmpty = errors.New("could not extract text from the resume")

// TextExtractor converts a document to plain text, returning "" on failure
type TextExtractor interface {
	ExtractText(doc models.Document) string
}

// Pipeline runs one uploaded document through storage, extraction and analysis
type Pipeline struct {
	store     storage.DocumentStore
	extractor TextExtractor
	analyzer  *Analyzer
	logger    zerolog.Logger
}

// NewPipeline creates a new analysis pipeline
func NewPipeline(store storage.DocumentStore, extractor TextExtractor, analyzer *Analyzer) *Pipeline {
	return &Pipeline{
		store:     store,
		extractor: extractor,
		analyzer:  analyzer,
		logger:    logger.Component("pipeline"),
	}
}

// Run analyzes an uploaded document. The stored copy is removed on every path
func (p *Pipeline) Run(ctx context.Context, doc models.Document, profileKey string) (*models.AnalyzeResponse, error) {
	key, err := p.store.Save(ctx, doc.Filename, doc.Format.ContentType(), doc.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	defer p.cleanup(ctx, key)

	data, err := p.store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen upload: %w", err)
	}

	text := p.extractor.ExtractText(models.Document{
		Filename: doc.Filename,
		Format:   doc.Format,
		Data:     data,
	})
	p.logger.Debug().
		Str("filename", doc.Filename).
		Str("format", string(doc.Format)).
		Int("bytes", len(data)).
		Int("text_len", len(text)).
		Msg("text extracted")

	resp, err := p.AnalyzeText(ctx, text, profileKey)
	if err != nil {
		return nil, err
	}
	resp.Filename = doc.Filename
	return resp, nil
}

// AnalyzeText analyzes text that was already extracted
func (p *Pipeline) AnalyzeText(ctx context.Context, text, profileKey string) (*models.AnalyzeResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrExtractionEmpty
	}

	result := p.analyzer.Analyze(ctx, text, profileKey)

	return &models.AnalyzeResponse{
		AnalysisResult: result,
		JobProfile:     p.analyzer.ProfileName(profileKey),
		WordCount:      len(strings.Fields(text)),
		CharacterCount: utf8.RuneCountInString(text),
	}, nil
}

func (p *Pipeline) cleanup(ctx context.Context, key string) {
	// the request context may already be cancelled
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := p.store.Delete(ctx, key); err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("failed to remove upload")
	}
}
