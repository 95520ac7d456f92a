// Package types defines the data model shared across the extraction pipeline.
package types

import "time"

// ExtractionMethod identifies which text acquisition strategy produced the text.
type ExtractionMethod string

const (
	// MethodTesseract is OCR of an uploaded image.
	MethodTesseract ExtractionMethod = "tesseract"
	// MethodPDFDirect is text-layer extraction where every page had usable text.
	MethodPDFDirect ExtractionMethod = "pdf-direct"
	// MethodPDFOCRFallback is PDF extraction where at least one page was
	// rasterized and OCR'd because its text layer was empty or near-empty.
	MethodPDFOCRFallback ExtractionMethod = "pdf-ocr-fallback"
)

// Supported media types for uploads.
const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypePDF  = "application/pdf"
)

// ExtractionRequest is one upload handed to the pipeline. The enclosing
// service layer has already enforced the size cap and media type allow-list.
type ExtractionRequest struct {
	Payload   []byte
	MediaType string
	Filename  string
}

// RawText is the output of text acquisition.
type RawText struct {
	Text   string
	Method ExtractionMethod
	// Quality is the engine-reported quality signal in [0,1]. Direct PDF
	// text is treated as maximal quality (1.0); OCR pages report the mean
	// word-level confidence. Mixed PDFs carry the character-weighted average.
	Quality float64
}

// CandidateDetails holds candidate identity fields from the marksheet.
type CandidateDetails struct {
	Name            *string `json:"name"`
	FatherName      *string `json:"father_name"`
	MotherName      *string `json:"mother_name"`
	RollNo          *string `json:"roll_no"`
	RegistrationNo  *string `json:"registration_no"`
	DateOfBirth     *string `json:"date_of_birth"`
	ExamYear        *string `json:"exam_year"`
	BoardUniversity *string `json:"board_university"`
	Institution     *string `json:"institution"`

	// FieldConfidence maps populated field names to the model-reported
	// confidence for that value.
	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`
	// Confidence is the computed section confidence.
	Confidence float64 `json:"confidence"`
}

// SubjectMark is one row of the subject-wise marks table.
type SubjectMark struct {
	Subject       *string  `json:"subject"`
	MaxMarks      *float64 `json:"max_marks"`
	ObtainedMarks *float64 `json:"obtained_marks"`
	Grade         *string  `json:"grade"`

	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`
	Confidence      float64            `json:"confidence"`
}

// OverallResult holds the aggregate examination outcome.
type OverallResult struct {
	Result        *string  `json:"result"`
	Grade         *string  `json:"grade"`
	Division      *string  `json:"division"`
	Percentage    *float64 `json:"percentage"`
	CGPA          *float64 `json:"cgpa"`
	TotalMarks    *float64 `json:"total_marks"`
	MaxTotalMarks *float64 `json:"max_total_marks"`

	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`
	Confidence      float64            `json:"confidence"`
}

// DocumentInfo holds metadata printed on the document itself.
type DocumentInfo struct {
	IssueDate    *string `json:"issue_date"`
	IssuePlace   *string `json:"issue_place"`
	DocumentType *string `json:"document_type"`

	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`
	Confidence      float64            `json:"confidence"`
}

// StructuredDraft is the schema-shaped record produced by the structurer,
// before the confidence engine computes section and overall scores. The
// Confidence fields on the sections are zero until scoring.
type StructuredDraft struct {
	CandidateDetails CandidateDetails `json:"candidate_details"`
	Subjects         []SubjectMark    `json:"subjects"`
	OverallResult    OverallResult    `json:"overall_result"`
	DocumentInfo     DocumentInfo     `json:"document_info"`
}

// ExtractionMetadata describes how a record was produced.
type ExtractionMetadata struct {
	FileName              string           `json:"file_name"`
	ProcessingTime        float64          `json:"processing_time"`
	ExtractionMethod      ExtractionMethod `json:"extraction_method"`
	TextLength            int              `json:"text_length"`
	OverallConfidence     float64          `json:"overall_confidence"`
	ConfidenceExplanation string           `json:"confidence_explanation"`
	// Advisories are the non-binding confidence band annotations. They never
	// alter the numeric score.
	Advisories []string `json:"advisories,omitempty"`
}

// ScoredRecord is the sole successful output of a pipeline invocation:
// the structured draft with computed section confidences plus metadata.
type ScoredRecord struct {
	CandidateDetails CandidateDetails   `json:"candidate_details"`
	Subjects         []SubjectMark      `json:"subjects"`
	OverallResult    OverallResult      `json:"overall_result"`
	DocumentInfo     DocumentInfo       `json:"document_info"`
	Metadata         ExtractionMetadata `json:"metadata"`
}

// SetProcessingTime stamps the wall-clock duration as fractional seconds.
func (m *ExtractionMetadata) SetProcessingTime(d time.Duration) {
	m.ProcessingTime = d.Seconds()
}
