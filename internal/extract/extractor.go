// Package extract acquires raw text from uploaded images and PDFs.
//
// Images go through tesseract with a configuration tuned for printed
// document text. PDFs try the text layer first, page by page, and fall
// back to rasterizing individual pages for OCR only when the text layer
// is empty or near-empty. Per-page failures are recovered locally; the
// request fails only when every page fails.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// Config holds tool paths and tuning for text acquisition.
type Config struct {
	Tesseract string // binary name or absolute path; default "tesseract"
	Pdftotext string // default "pdftotext"
	Pdftoppm  string // default "pdftoppm"

	Lang string // tesseract language, default "eng"
	PSM  int    // page segmentation mode, default 6 (uniform block of text)
	OEM  int    // engine mode, default 3
	DPI  int    // rasterization DPI for OCR fallback pages, default 300

	// MinDirectTextChars is the minimum-usefulness threshold: a PDF page
	// whose normalized text layer is shorter than this is re-extracted
	// via OCR.
	MinDirectTextChars int
}

func (c Config) withDefaults() Config {
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.Pdftotext == "" {
		c.Pdftotext = "pdftotext"
	}
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Lang == "" {
		c.Lang = "eng"
	}
	if c.PSM <= 0 {
		c.PSM = 6
	}
	if c.OEM <= 0 {
		c.OEM = 3
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.MinDirectTextChars <= 0 {
		c.MinDirectTextChars = 32
	}
	return c
}

// Extractor turns upload payloads into RawText.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	// pageCount is swappable in tests; pdfcpu needs a real PDF.
	pageCount func(path string) (int, error)
}

// NewExtractor creates an extractor that shells out to the configured tools.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		cfg:       cfg.withDefaults(),
		runner:    execRunner{logger: logger},
		logger:    logger,
		pageCount: pdfPageCount,
	}
}

// Extract acquires text from the request payload using the strategy for its
// declared media type. Returns ErrUnsupportedFormat for anything other than
// jpeg/png/pdf and ErrExtractionFailed when every applicable strategy errors.
func (e *Extractor) Extract(ctx context.Context, req types.ExtractionRequest) (*types.RawText, error) {
	start := time.Now()

	var ext string
	switch req.MediaType {
	case types.MediaTypeJPEG:
		ext = ".jpg"
	case types.MediaTypePNG:
		ext = ".png"
	case types.MediaTypePDF:
		ext = ".pdf"
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, req.MediaType)
	}

	// The external tools operate on files; the payload lives in a
	// request-scoped temp file and is removed before returning.
	tmp, err := os.CreateTemp("", "marksheet-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("%w: creating scratch file: %v", types.ErrExtractionFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(req.Payload); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: writing scratch file: %v", types.ErrExtractionFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: writing scratch file: %v", types.ErrExtractionFailed, err)
	}

	var raw types.RawText
	if req.MediaType == types.MediaTypePDF {
		raw, err = e.extractPDF(ctx, tmp.Name())
	} else {
		raw, err = e.extractImage(ctx, tmp.Name())
	}
	if err != nil {
		return nil, err
	}

	e.logger.Info("text acquired",
		"file", req.Filename,
		"method", string(raw.Method),
		"quality", raw.Quality,
		"chars", len(raw.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &raw, nil
}
