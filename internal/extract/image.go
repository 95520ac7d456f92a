package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// noWordsQuality is reported when OCR succeeds but detects no words.
const noWordsQuality = 0.1

func (e *Extractor) extractImage(ctx context.Context, path string) (types.RawText, error) {
	text, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return types.RawText{}, fmt.Errorf("%w: image OCR: %v", types.ErrExtractionFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return types.RawText{}, fmt.Errorf("%w: no text could be extracted from the image", types.ErrExtractionFailed)
	}

	quality, err := e.tesseractQuality(ctx, path)
	if err != nil {
		// The text itself succeeded; degrade the quality signal rather
		// than failing the request.
		e.logger.Warn("tesseract confidence pass failed", "error", err)
		quality = noWordsQuality
	}

	return types.RawText{
		Text:    text,
		Method:  types.MethodTesseract,
		Quality: quality,
	}, nil
}

func (e *Extractor) tesseractArgs(path string, extra ...string) []string {
	args := []string{
		path, "stdout",
		"-l", e.cfg.Lang,
		"--oem", strconv.Itoa(e.cfg.OEM),
		"--psm", strconv.Itoa(e.cfg.PSM),
	}
	return append(args, extra...)
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, error) {
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, e.tesseractArgs(path)...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

// tesseractQuality runs tesseract in TSV mode and returns the mean
// word-level confidence normalized to [0,1].
func (e *Extractor) tesseractQuality(ctx context.Context, path string) (float64, error) {
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, e.tesseractArgs(path, "tsv")...)
	if err != nil {
		return 0, fmt.Errorf("tesseract tsv: %w", err)
	}
	return meanWordConfidence(string(out)), nil
}

// meanWordConfidence parses tesseract TSV output. The conf column is the
// second to last; rows with conf -1 are layout elements, not words.
func meanWordConfidence(tsv string) float64 {
	var sum float64
	var n int

	lines := strings.Split(tsv, "\n")
	for i, line := range lines {
		if i == 0 || line == "" {
			continue // header
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[len(cols)-2]
		conf, err := strconv.ParseFloat(confStr, 64)
		if err != nil || conf < 0 {
			continue
		}
		sum += conf
		n++
	}

	if n == 0 {
		return noWordsQuality
	}
	q := sum / float64(n) / 100.0
	if q > 1 {
		q = 1
	}
	return q
}
