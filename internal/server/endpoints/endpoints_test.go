package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/pipeline"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/svcctx"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

type fakeExtractor struct {
	raw *types.RawText
	err error
}

func (f *fakeExtractor) Extract(_ context.Context, _ types.ExtractionRequest) (*types.RawText, error) {
	return f.raw, f.err
}

type fakeStructurer struct {
	draft *types.StructuredDraft
	err   error
}

func (f *fakeStructurer) Structure(_ context.Context, _ string) (*types.StructuredDraft, error) {
	return f.draft, f.err
}

func strPtr(s string) *string { return &s }

func workingPipeline() *pipeline.Pipeline {
	ext := &fakeExtractor{raw: &types.RawText{Text: "Name: Ravi", Method: types.MethodTesseract, Quality: 0.9}}
	str := &fakeStructurer{draft: &types.StructuredDraft{
		CandidateDetails: types.CandidateDetails{
			Name:            strPtr("Ravi Kumar"),
			FieldConfidence: map[string]float64{"name": 0.9},
		},
	}}
	return pipeline.New(ext, str, nil, nil)
}

func failingPipeline(err error) *pipeline.Pipeline {
	return pipeline.New(&fakeExtractor{err: err}, &fakeStructurer{}, nil, nil)
}

// multipartBody builds a multipart form with files under the given field.
func multipartBody(t *testing.T, field string, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := part.Write([]byte("payload")); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func requestWithPipeline(t *testing.T, p *pipeline.Pipeline, method, path string, body *bytes.Buffer, contentType string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	ctx := svcctx.WithServices(req.Context(), &svcctx.Services{Pipeline: p})
	return req.WithContext(ctx)
}

func TestHealthEndpoint(t *testing.T) {
	ep := &HealthEndpoint{}
	_, _, handler := ep.Route()

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Service != "Marksheet Extraction API" {
		t.Errorf("service = %q", resp.Service)
	}
}

func TestFormatsEndpoint(t *testing.T) {
	ep := &FormatsEndpoint{}
	_, _, handler := ep.Route()

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/supported-formats", nil))

	var resp FormatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.MaxFileSizeMB != 10 {
		t.Errorf("max file size = %d, want 10", resp.MaxFileSizeMB)
	}
	if resp.MaxBatchFiles != 5 {
		t.Errorf("max batch files = %d, want 5", resp.MaxBatchFiles)
	}
	if len(resp.SupportedFormats) != 4 {
		t.Errorf("formats = %v", resp.SupportedFormats)
	}
}

func TestExtractEndpointSuccess(t *testing.T) {
	ep := &ExtractEndpoint{}
	_, _, handler := ep.Route()

	body, ct := multipartBody(t, "file", "marksheet.jpg")
	req := requestWithPipeline(t, workingPipeline(), "POST", "/api/extract", body, ct)

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var record types.ScoredRecord
	if err := json.NewDecoder(rec.Body).Decode(&record); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if record.Metadata.FileName != "marksheet.jpg" {
		t.Errorf("file name = %q", record.Metadata.FileName)
	}
	if record.CandidateDetails.Name == nil || *record.CandidateDetails.Name != "Ravi Kumar" {
		t.Errorf("candidate name = %v", record.CandidateDetails.Name)
	}
}

func TestExtractEndpointNoFile(t *testing.T) {
	ep := &ExtractEndpoint{}
	_, _, handler := ep.Route()

	body, ct := multipartBody(t, "wrong_field", "marksheet.jpg")
	req := requestWithPipeline(t, workingPipeline(), "POST", "/api/extract", body, ct)

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExtractEndpointUnsupportedFormat(t *testing.T) {
	ep := &ExtractEndpoint{}
	_, _, handler := ep.Route()

	body, ct := multipartBody(t, "file", "marksheet.gif")
	req := requestWithPipeline(t, workingPipeline(), "POST", "/api/extract", body, ct)

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Kind != "unsupported_format" {
		t.Errorf("kind = %q, want unsupported_format", resp.Kind)
	}
}

func TestExtractEndpointErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"extraction failed", types.ErrExtractionFailed, http.StatusUnprocessableEntity, "extraction_failed"},
		{"structuring failed", types.ErrStructuringFailed, http.StatusBadGateway, "structuring_failed"},
		{"schema violation", types.ErrSchemaViolation, http.StatusBadGateway, "schema_violation"},
		{"configuration error", types.ErrConfiguration, http.StatusInternalServerError, "configuration_error"},
	}

	ep := &ExtractEndpoint{}
	_, _, handler := ep.Route()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, "file", "marksheet.jpg")
			req := requestWithPipeline(t, failingPipeline(tt.err), "POST", "/api/extract", body, ct)

			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
			}
		})
	}
}

func TestBatchExtractTooManyFiles(t *testing.T) {
	ep := &BatchExtractEndpoint{}
	_, _, handler := ep.Route()

	body, ct := multipartBody(t, "files", "a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg")
	req := requestWithPipeline(t, workingPipeline(), "POST", "/api/batch-extract", body, ct)

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestBatchExtractMixedResults(t *testing.T) {
	ep := &BatchExtractEndpoint{}
	_, _, handler := ep.Route()

	// The .gif fails validation; the others process normally.
	body, ct := multipartBody(t, "files", "first.jpg", "second.gif", "third.pdf")
	req := requestWithPipeline(t, workingPipeline(), "POST", "/api/batch-extract", body, ct)

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp BatchExtractResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(resp.Results))
	}

	for i, want := range []string{"first.jpg", "second.gif", "third.pdf"} {
		if resp.Results[i].FileName != want {
			t.Errorf("results[%d].FileName = %q, want %q", i, resp.Results[i].FileName, want)
		}
	}
	if resp.Results[0].Record == nil || resp.Results[2].Record == nil {
		t.Error("valid files missing records")
	}
	if resp.Results[1].Error == nil || resp.Results[1].Error.Kind != "unsupported_format" {
		t.Errorf("invalid file error = %+v", resp.Results[1].Error)
	}
	if resp.Results[1].Record != nil {
		t.Error("invalid file carries a record")
	}
}

func TestBatchExtractAllFailed(t *testing.T) {
	ep := &BatchExtractEndpoint{}
	_, _, handler := ep.Route()

	body, ct := multipartBody(t, "files", "a.jpg", "b.pdf")
	req := requestWithPipeline(t, failingPipeline(types.ErrExtractionFailed), "POST", "/api/batch-extract", body, ct)

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusUnprocessableEntity, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.Error, "a.jpg") || !strings.Contains(resp.Error, "b.pdf") {
		t.Errorf("error detail %q missing per-file context", resp.Error)
	}
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{"unsupported_format", http.StatusBadRequest},
		{"extraction_failed", http.StatusUnprocessableEntity},
		{"structuring_failed", http.StatusBadGateway},
		{"schema_violation", http.StatusBadGateway},
		{"configuration_error", http.StatusInternalServerError},
		{"internal", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForKind(tt.kind); got != tt.want {
			t.Errorf("statusForKind(%q) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
