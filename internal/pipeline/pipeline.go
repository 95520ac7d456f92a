// Package pipeline runs the end-to-end marksheet extraction flow: text
// acquisition, normalization, model structuring, and confidence scoring.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/confidence"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/normalize"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// TextExtractor acquires raw text from an upload.
type TextExtractor interface {
	Extract(ctx context.Context, req types.ExtractionRequest) (*types.RawText, error)
}

// Structurer turns normalized text into a schema-shaped draft.
type Structurer interface {
	Structure(ctx context.Context, text string) (*types.StructuredDraft, error)
}

// Pipeline wires the extraction stages together. It holds no per-document
// state and is safe for concurrent use.
type Pipeline struct {
	extractor  TextExtractor
	structurer Structurer
	engine     *confidence.Engine
	logger     *slog.Logger
}

// New builds a pipeline from its stages.
func New(extractor TextExtractor, structurer Structurer, engine *confidence.Engine, logger *slog.Logger) *Pipeline {
	if engine == nil {
		engine = confidence.NewEngine()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor:  extractor,
		structurer: structurer,
		engine:     engine,
		logger:     logger,
	}
}

// Run processes one upload end to end and returns the scored record.
func (p *Pipeline) Run(ctx context.Context, req types.ExtractionRequest) (*types.ScoredRecord, error) {
	start := time.Now()

	raw, err := p.extractor.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	text := normalize.Text(raw.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: document yielded no text", types.ErrExtractionFailed)
	}

	draft, err := p.structurer.Structure(ctx, text)
	if err != nil {
		return nil, err
	}

	scored := p.engine.Score(*draft, raw.Quality)

	record := &types.ScoredRecord{
		CandidateDetails: scored.Draft.CandidateDetails,
		Subjects:         scored.Draft.Subjects,
		OverallResult:    scored.Draft.OverallResult,
		DocumentInfo:     scored.Draft.DocumentInfo,
		Metadata: types.ExtractionMetadata{
			FileName:              req.Filename,
			ExtractionMethod:      raw.Method,
			TextLength:            len(text),
			OverallConfidence:     scored.Overall,
			ConfidenceExplanation: scored.Explanation,
			Advisories:            scored.Advisories,
		},
	}
	record.Metadata.SetProcessingTime(time.Since(start))

	p.logger.Info("processed marksheet",
		"file", req.Filename,
		"method", raw.Method,
		"text_length", len(text),
		"confidence", scored.Overall,
		"duration", time.Since(start))

	return record, nil
}
