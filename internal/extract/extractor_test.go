package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// fakeRunner scripts external tool behavior per command and records calls.
type fakeRunner struct {
	t        *testing.T
	handlers map[string]func(args []string) ([]byte, error)
	calls    []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name)
	h, ok := f.handlers[name]
	if !ok {
		f.t.Fatalf("unexpected command %q", name)
	}
	out, err := h(args)
	return out, nil, err
}

func (f *fakeRunner) callCount(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func newTestExtractor(t *testing.T, r *fakeRunner, pages int) *Extractor {
	e := NewExtractor(Config{}, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	e.runner = r
	e.pageCount = func(string) (int, error) { return pages, nil }
	return e
}

// tsvWithConfs builds tesseract TSV output with the given word confidences.
func tsvWithConfs(confs ...int) []byte {
	var b strings.Builder
	b.WriteString("level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n")
	for i, c := range confs {
		fmt.Fprintf(&b, "5\t1\t1\t1\t1\t%d\t0\t0\t10\t10\t%d\tword%d\n", i+1, c, i)
	}
	return []byte(b.String())
}

// hasTSVRequest reports whether the tesseract invocation asked for TSV output.
func hasTSVRequest(args []string) bool {
	return len(args) > 0 && args[len(args)-1] == "tsv"
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := newTestExtractor(t, &fakeRunner{t: t, handlers: map[string]func([]string) ([]byte, error){}}, 0)
	_, err := e.Extract(context.Background(), types.ExtractionRequest{
		Payload:   []byte("x"),
		MediaType: "image/gif",
		Filename:  "anim.gif",
	})
	if !errors.Is(err, types.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractImage(t *testing.T) {
	r := &fakeRunner{t: t, handlers: map[string]func([]string) ([]byte, error){
		"tesseract": func(args []string) ([]byte, error) {
			if hasTSVRequest(args) {
				return tsvWithConfs(80, 90), nil
			}
			return []byte("Roll No: 12345\nMathematics 85\n"), nil
		},
	}}
	e := newTestExtractor(t, r, 0)

	raw, err := e.Extract(context.Background(), types.ExtractionRequest{
		Payload:   []byte("jpegbytes"),
		MediaType: types.MediaTypeJPEG,
		Filename:  "sheet.jpg",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if raw.Method != types.MethodTesseract {
		t.Fatalf("method = %q, want %q", raw.Method, types.MethodTesseract)
	}
	if math.Abs(raw.Quality-0.85) > 1e-9 {
		t.Fatalf("quality = %v, want 0.85", raw.Quality)
	}
	if !strings.Contains(raw.Text, "Mathematics") {
		t.Fatalf("text = %q, missing OCR content", raw.Text)
	}
}

func TestExtractImageOCRFails(t *testing.T) {
	r := &fakeRunner{t: t, handlers: map[string]func([]string) ([]byte, error){
		"tesseract": func([]string) ([]byte, error) { return nil, errors.New("boom") },
	}}
	e := newTestExtractor(t, r, 0)

	_, err := e.Extract(context.Background(), types.ExtractionRequest{
		Payload:   []byte("junk"),
		MediaType: types.MediaTypePNG,
		Filename:  "corrupt.png",
	})
	if !errors.Is(err, types.ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestExtractPDFDirectNeverInvokesOCR(t *testing.T) {
	longPage := strings.Repeat("Board of Secondary Education marksheet line\n", 4)
	r := &fakeRunner{t: t, handlers: map[string]func([]string) ([]byte, error){
		"pdftotext": func([]string) ([]byte, error) { return []byte(longPage), nil },
	}}
	e := newTestExtractor(t, r, 2)

	raw, err := e.Extract(context.Background(), types.ExtractionRequest{
		Payload:   []byte("%PDF-"),
		MediaType: types.MediaTypePDF,
		Filename:  "sheet.pdf",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if raw.Method != types.MethodPDFDirect {
		t.Fatalf("method = %q, want %q", raw.Method, types.MethodPDFDirect)
	}
	if raw.Quality != 1.0 {
		t.Fatalf("quality = %v, want 1.0 for direct extraction", raw.Quality)
	}
	if n := r.callCount("tesseract"); n != 0 {
		t.Fatalf("tesseract called %d times for a direct-text PDF", n)
	}
	if n := r.callCount("pdftoppm"); n != 0 {
		t.Fatalf("pdftoppm called %d times for a direct-text PDF", n)
	}
}

func TestExtractPDFOCRFallback(t *testing.T) {
	longPage := strings.Repeat("Statement of marks for the annual examination\n", 4)
	ocrText := "Scanned page: Physics 78 Chemistry 81"
	r := &fakeRunner{t: t, handlers: map[string]func([]string) ([]byte, error){
		"pdftotext": func(args []string) ([]byte, error) {
			// Page 1 has a text layer; page 2 is an empty scan.
			if args[1] == "1" {
				return []byte(longPage), nil
			}
			return []byte("  \n"), nil
		},
		"pdftoppm": func(args []string) ([]byte, error) {
			prefix := args[len(args)-1]
			if err := os.WriteFile(prefix+"-2.png", []byte("png"), 0o644); err != nil {
				return nil, err
			}
			return nil, nil
		},
		"tesseract": func(args []string) ([]byte, error) {
			if hasTSVRequest(args) {
				return tsvWithConfs(60), nil
			}
			return []byte(ocrText), nil
		},
	}}
	e := newTestExtractor(t, r, 2)

	raw, err := e.Extract(context.Background(), types.ExtractionRequest{
		Payload:   []byte("%PDF-"),
		MediaType: types.MediaTypePDF,
		Filename:  "mixed.pdf",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if raw.Method != types.MethodPDFOCRFallback {
		t.Fatalf("method = %q, want %q", raw.Method, types.MethodPDFOCRFallback)
	}

	// Character-weighted average of page 1 (quality 1.0) and page 2 (0.6).
	l1, l2 := float64(len(longPage)), float64(len(ocrText))
	want := (l1*1.0 + l2*0.6) / (l1 + l2)
	if math.Abs(raw.Quality-want) > 1e-9 {
		t.Fatalf("quality = %v, want %v", raw.Quality, want)
	}
	if !strings.Contains(raw.Text, "Physics 78") {
		t.Fatalf("text missing OCR fallback content: %q", raw.Text)
	}
}

func TestExtractPDFAllPagesFail(t *testing.T) {
	r := &fakeRunner{t: t, handlers: map[string]func([]string) ([]byte, error){
		"pdftotext": func([]string) ([]byte, error) { return nil, errors.New("damaged stream") },
		"pdftoppm":  func([]string) ([]byte, error) { return nil, errors.New("render failed") },
	}}
	e := newTestExtractor(t, r, 3)

	_, err := e.Extract(context.Background(), types.ExtractionRequest{
		Payload:   []byte("%PDF-"),
		MediaType: types.MediaTypePDF,
		Filename:  "corrupted.pdf",
	})
	if !errors.Is(err, types.ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestExtractPDFSkipsBadPages(t *testing.T) {
	longPage := strings.Repeat("Certificate of examination results issued herewith\n", 3)
	r := &fakeRunner{t: t, handlers: map[string]func([]string) ([]byte, error){
		"pdftotext": func(args []string) ([]byte, error) {
			if args[1] == "2" {
				return nil, errors.New("damaged page")
			}
			return []byte(longPage), nil
		},
		"pdftoppm": func([]string) ([]byte, error) { return nil, errors.New("render failed") },
	}}
	e := newTestExtractor(t, r, 3)

	raw, err := e.Extract(context.Background(), types.ExtractionRequest{
		Payload:   []byte("%PDF-"),
		MediaType: types.MediaTypePDF,
		Filename:  "partial.pdf",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v, want recovery with remaining pages", err)
	}
	if raw.Method != types.MethodPDFDirect {
		t.Fatalf("method = %q, want %q", raw.Method, types.MethodPDFDirect)
	}
}

func TestMeanWordConfidence(t *testing.T) {
	tests := []struct {
		name string
		tsv  string
		want float64
	}{
		{"no words", "header\n", noWordsQuality},
		{"single word", string(tsvWithConfs(95)), 0.95},
		{"averages", string(tsvWithConfs(100, 50)), 0.75},
		{"skips layout rows", string(tsvWithConfs(90)) + "2\t1\t1\t0\t0\t0\t0\t0\t5\t5\t-1\t\n", 0.90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := meanWordConfidence(tt.tsv); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("meanWordConfidence = %v, want %v", got, tt.want)
			}
		})
	}
}
