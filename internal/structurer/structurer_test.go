package structurer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

type fakeResponse struct {
	content string
	err     error
}

type fakeTransport struct {
	responses []fakeResponse
	calls     []ChatRequest
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Complete(_ context.Context, req ChatRequest) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, req)
	if i >= len(f.responses) {
		return "", fmt.Errorf("unexpected call %d", i)
	}
	return f.responses[i].content, f.responses[i].err
}

const validDoc = `{
	"candidate_details": {
		"name": "Anita Sharma",
		"roll_no": "123456",
		"father_name": null,
		"mother_name": null,
		"registration_no": null,
		"date_of_birth": null,
		"exam_year": "2021",
		"board_university": "CBSE",
		"institution": null,
		"field_confidence": {"name": 0.95, "roll_no": 0.9, "exam_year": 0.9, "board_university": 0.85}
	},
	"subjects": [
		{"subject": "Mathematics", "max_marks": 100, "obtained_marks": 91, "grade": "A1",
		 "field_confidence": {"subject": 0.95, "max_marks": 0.9, "obtained_marks": 0.9, "grade": 0.9}}
	],
	"overall_result": {
		"result": "PASS", "grade": null, "division": "First", "percentage": 91.0,
		"cgpa": null, "total_marks": 455, "max_total_marks": 500,
		"field_confidence": {"result": 0.95, "percentage": 0.9}
	},
	"document_info": {
		"issue_date": null, "issue_place": null, "document_type": "Mark Sheet",
		"field_confidence": {"document_type": 0.9}
	}
}`

func testStructurer(ft *fakeTransport) *Structurer {
	return New(Config{MaxAttempts: 3, RetryDelay: time.Millisecond}, ft, nil, nil)
}

func TestStructureSuccess(t *testing.T) {
	ft := &fakeTransport{responses: []fakeResponse{{content: validDoc}}}
	s := testStructurer(ft)

	draft, err := s.Structure(context.Background(), "some marksheet text")
	if err != nil {
		t.Fatalf("Structure() error = %v", err)
	}
	if draft.CandidateDetails.Name == nil || *draft.CandidateDetails.Name != "Anita Sharma" {
		t.Errorf("candidate name = %v, want Anita Sharma", draft.CandidateDetails.Name)
	}
	if len(draft.Subjects) != 1 {
		t.Fatalf("subjects = %d, want 1", len(draft.Subjects))
	}
	if got := draft.Subjects[0].FieldConfidence["subject"]; got != 0.95 {
		t.Errorf("subject field confidence = %v, want 0.95", got)
	}
	if len(ft.calls) != 1 {
		t.Errorf("transport calls = %d, want 1", len(ft.calls))
	}
	if !strings.Contains(ft.calls[0].Messages[0], "some marksheet text") {
		t.Error("extraction prompt missing marksheet text")
	}
	if ft.calls[0].System == "" {
		t.Error("system prompt not sent")
	}
}

func TestStructureFencedJSON(t *testing.T) {
	fenced := "```json\n" + validDoc + "\n```"
	ft := &fakeTransport{responses: []fakeResponse{{content: fenced}}}
	s := testStructurer(ft)

	draft, err := s.Structure(context.Background(), "text")
	if err != nil {
		t.Fatalf("Structure() error = %v", err)
	}
	if draft.OverallResult.Result == nil || *draft.OverallResult.Result != "PASS" {
		t.Errorf("result = %v, want PASS", draft.OverallResult.Result)
	}
}

func TestStructureRetriesTransientFailures(t *testing.T) {
	ft := &fakeTransport{responses: []fakeResponse{
		{err: Transient(errors.New("rate limited"))},
		{err: Transient(errors.New("gateway timeout"))},
		{content: validDoc},
	}}
	s := testStructurer(ft)

	if _, err := s.Structure(context.Background(), "text"); err != nil {
		t.Fatalf("Structure() error = %v", err)
	}
	if len(ft.calls) != 3 {
		t.Errorf("transport calls = %d, want 3", len(ft.calls))
	}
}

func TestStructureExhaustsRetries(t *testing.T) {
	ft := &fakeTransport{responses: []fakeResponse{
		{err: Transient(errors.New("down"))},
		{err: Transient(errors.New("down"))},
		{err: Transient(errors.New("down"))},
	}}
	s := testStructurer(ft)

	_, err := s.Structure(context.Background(), "text")
	if !errors.Is(err, types.ErrStructuringFailed) {
		t.Fatalf("Structure() error = %v, want ErrStructuringFailed", err)
	}
	if len(ft.calls) != 3 {
		t.Errorf("transport calls = %d, want 3", len(ft.calls))
	}
}

func TestStructureDoesNotRetryPermanentFailures(t *testing.T) {
	ft := &fakeTransport{responses: []fakeResponse{
		{err: errors.New("invalid api key")},
	}}
	s := testStructurer(ft)

	_, err := s.Structure(context.Background(), "text")
	if !errors.Is(err, types.ErrStructuringFailed) {
		t.Fatalf("Structure() error = %v, want ErrStructuringFailed", err)
	}
	if len(ft.calls) != 1 {
		t.Errorf("transport calls = %d, want 1", len(ft.calls))
	}
}

func TestStructureRepairsInvalidOutput(t *testing.T) {
	bad := `{"candidate_details": {}, "subjects": []}`
	ft := &fakeTransport{responses: []fakeResponse{
		{content: bad},
		{content: validDoc},
	}}
	s := testStructurer(ft)

	draft, err := s.Structure(context.Background(), "text")
	if err != nil {
		t.Fatalf("Structure() error = %v", err)
	}
	if draft.CandidateDetails.Name == nil {
		t.Error("repaired draft missing candidate name")
	}
	if len(ft.calls) != 2 {
		t.Fatalf("transport calls = %d, want 2", len(ft.calls))
	}

	repair := ft.calls[1]
	if len(repair.Messages) != 3 {
		t.Fatalf("repair turn messages = %d, want 3", len(repair.Messages))
	}
	if repair.Messages[1] != bad {
		t.Error("repair turn does not echo the failing output")
	}
	if !strings.Contains(repair.Messages[2], "did not match") {
		t.Error("repair prompt missing correction instruction")
	}
}

func TestStructureRejectsAfterFailedRepair(t *testing.T) {
	ft := &fakeTransport{responses: []fakeResponse{
		{content: `not json at all`},
		{content: `still not json`},
	}}
	s := testStructurer(ft)

	_, err := s.Structure(context.Background(), "text")
	if !errors.Is(err, types.ErrSchemaViolation) {
		t.Fatalf("Structure() error = %v, want ErrSchemaViolation", err)
	}
	if len(ft.calls) != 2 {
		t.Errorf("transport calls = %d, want 2", len(ft.calls))
	}
}

func TestStructureNilTransport(t *testing.T) {
	s := New(Config{}, nil, nil, nil)
	_, err := s.Structure(context.Background(), "text")
	if !errors.Is(err, types.ErrConfiguration) {
		t.Fatalf("Structure() error = %v, want ErrConfiguration", err)
	}
}

func TestStructureContextCancellation(t *testing.T) {
	ft := &fakeTransport{responses: []fakeResponse{
		{err: Transient(errors.New("slow"))},
		{err: Transient(errors.New("slow"))},
		{err: Transient(errors.New("slow"))},
	}}
	s := testStructurer(ft)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Structure(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Structure() error = %v, want context.Canceled", err)
	}
}

func TestParseModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"plain object", `{"a": 1}`, false},
		{"fenced", "```json\n{\"a\": 1}\n```", false},
		{"fenced no language", "```\n{\"a\": 1}\n```", false},
		{"surrounded by prose", "Here is the JSON:\n{\"a\": 1}\nHope that helps!", false},
		{"empty", "", true},
		{"no json", "I could not extract anything", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseModelJSON(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseModelJSON(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestRateLimiterAllowsBurstThenWaits(t *testing.T) {
	rl := NewRateLimiter(6000) // 100/sec so the refill wait stays short
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
}

func TestRateLimiterHonorsCancellation(t *testing.T) {
	rl := NewRateLimiter(1)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rl.Wait(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait() error = %v, want context.Canceled", err)
	}
}
