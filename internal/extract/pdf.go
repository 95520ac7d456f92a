package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/normalize"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// pageText is one successfully extracted page.
type pageText struct {
	text    string
	quality float64
	ocr     bool
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (types.RawText, error) {
	pageCount, err := e.pageCount(path)
	if err != nil {
		return types.RawText{}, fmt.Errorf("%w: unreadable PDF: %v", types.ErrExtractionFailed, err)
	}

	var pages []pageText
	for p := 1; p <= pageCount; p++ {
		pt, err := e.extractPage(ctx, path, p)
		if err != nil {
			// Recover locally: skip the page, keep going.
			e.logger.Warn("page extraction failed", "page", p, "error", err)
			continue
		}
		pages = append(pages, pt)
	}

	if len(pages) == 0 {
		return types.RawText{}, fmt.Errorf("%w: all %d pages failed", types.ErrExtractionFailed, pageCount)
	}

	var b strings.Builder
	var weighted float64
	var chars int
	method := types.MethodPDFDirect
	for _, pt := range pages {
		if pt.ocr {
			method = types.MethodPDFOCRFallback
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pt.text)
		weighted += float64(len(pt.text)) * pt.quality
		chars += len(pt.text)
	}

	// chars > 0 is guaranteed: extractPage rejects empty pages.
	return types.RawText{
		Text:    b.String(),
		Method:  method,
		Quality: weighted / float64(chars),
	}, nil
}

func pdfPageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("pdf has no pages")
	}
	return n, nil
}

// extractPage tries the text layer first and falls back to OCR when the
// layer is empty or below the minimum-usefulness threshold.
func (e *Extractor) extractPage(ctx context.Context, path string, page int) (pageText, error) {
	direct, directErr := e.pageTextLayer(ctx, path, page)
	if directErr == nil && len(normalize.Text(direct)) >= e.cfg.MinDirectTextChars {
		return pageText{text: direct, quality: 1.0}, nil
	}

	text, quality, ocrErr := e.pageOCR(ctx, path, page)
	if ocrErr != nil {
		if directErr != nil {
			return pageText{}, fmt.Errorf("text layer: %v; ocr: %v", directErr, ocrErr)
		}
		return pageText{}, fmt.Errorf("near-empty text layer and ocr failed: %v", ocrErr)
	}
	if strings.TrimSpace(text) == "" {
		return pageText{}, fmt.Errorf("page %d produced no text", page)
	}
	return pageText{text: text, quality: quality, ocr: true}, nil
}

func (e *Extractor) pageTextLayer(ctx context.Context, path string, page int) (string, error) {
	p := strconv.Itoa(page)
	out, _, err := e.runner.Run(ctx, e.cfg.Pdftotext,
		"-f", p, "-l", p,
		"-layout", "-enc", "UTF-8", "-eol", "unix",
		path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

// pageOCR renders one page to a high-resolution raster and runs tesseract
// on it. 300 DPI is ≥2x the nominal 72/150 DPI render most scanners emit.
func (e *Extractor) pageOCR(ctx context.Context, path string, page int) (string, float64, error) {
	tmpDir, err := os.MkdirTemp("", "marksheet-raster-*")
	if err != nil {
		return "", 0, err
	}
	defer os.RemoveAll(tmpDir)

	p := strconv.Itoa(page)
	prefix := filepath.Join(tmpDir, "page")
	_, _, err = e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", p, "-l", p,
		"-r", strconv.Itoa(e.cfg.DPI),
		"-png", path, prefix)
	if err != nil {
		return "", 0, fmt.Errorf("pdftoppm: %w", err)
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", 0, fmt.Errorf("pdftoppm produced no raster for page %d", page)
	}

	text, err := e.tesseractOCR(ctx, matches[0])
	if err != nil {
		return "", 0, err
	}
	quality, err := e.tesseractQuality(ctx, matches[0])
	if err != nil {
		quality = noWordsQuality
	}
	return text, quality, nil
}
