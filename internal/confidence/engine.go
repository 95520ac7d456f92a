// Package confidence computes deterministic per-section and overall
// confidence scores for a structured draft. Scoring is a pure function of
// the draft and the text acquisition quality signal; the external model's
// self-reported field confidences are inputs, never the authoritative score.
package confidence

import (
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// sectionBaseWeight and sectionCompletenessWeight shape the completeness
// penalty: section = base × (0.7 + 0.3 × completeness).
const (
	sectionBaseWeight         = 0.7
	sectionCompletenessWeight = 0.3
)

// qualityBaseWeight and qualityAdjustWeight shape the quality adjustment:
// overall = weighted × (0.8 + 0.2 × quality).
const (
	qualityBaseWeight   = 0.8
	qualityAdjustWeight = 0.2
)

// defaultFieldConfidence stands in for a populated field the model did not
// attach a confidence to.
const defaultFieldConfidence = 0.5

// Clamp forces v into [0,1]. Applied after every multiplication and to all
// model-reported inputs so floating-point drift or adversarial values can
// never leave the range.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SectionScore computes a section confidence from the confidences of the
// fields actually present and the schema-expected field count.
//
//	base = mean of present confidences (0 when none are present)
//	completeness = present / expected, clamped
//	score = base × (0.7 + 0.3 × completeness), clamped
func SectionScore(present []float64, expected int) float64 {
	return Clamp(sectionBase(present) * (sectionBaseWeight + sectionCompletenessWeight*sectionCompleteness(len(present), expected)))
}

func sectionBase(present []float64) float64 {
	if len(present) == 0 {
		return 0
	}
	var sum float64
	for _, c := range present {
		sum += Clamp(c)
	}
	return sum / float64(len(present))
}

func sectionCompleteness(present, expected int) float64 {
	if expected <= 0 {
		return 0
	}
	return Clamp(float64(present) / float64(expected))
}

// Overall computes the quality-adjusted overall confidence from the four
// section confidences:
//
//	overall = Σ wᵢ·sᵢ × (0.8 + 0.2 × quality), clamped
func Overall(w SectionWeights, candidate, subjects, result, document, quality float64) float64 {
	weighted := Clamp(w.CandidateDetails*candidate +
		w.Subjects*subjects +
		w.OverallResult*result +
		w.DocumentInfo*document)
	return Clamp(weighted * (qualityBaseWeight + qualityAdjustWeight*Clamp(quality)))
}

// Engine scores structured drafts with a fixed weight configuration.
type Engine struct {
	weights SectionWeights
}

// NewEngine returns an engine using DefaultWeights.
func NewEngine() *Engine {
	return &Engine{weights: DefaultWeights}
}

// Weights returns the engine's section weights.
func (e *Engine) Weights() SectionWeights {
	return e.weights
}

// Scored is the result of scoring a draft: the draft with section and
// per-subject confidences filled in, plus the overall score and its
// deterministic interpretation.
type Scored struct {
	Draft       types.StructuredDraft
	Overall     float64
	Explanation string
	Advisories  []string
}

// Score computes all section confidences and the quality-adjusted overall
// confidence for a draft. Pure and deterministic: identical inputs yield an
// identical Scored value.
func (e *Engine) Score(draft types.StructuredDraft, quality float64) Scored {
	candPresent := presentCandidate(draft.CandidateDetails)
	resultPresent := presentResult(draft.OverallResult)
	docPresent := presentDocument(draft.DocumentInfo)

	// The input draft is immutable; score a copy of the subject rows.
	draft.Subjects = append([]types.SubjectMark(nil), draft.Subjects...)

	// Subjects aggregate across rows; an empty table scores zero against
	// one expected row so missing marks data is penalized, and per-row
	// scores use the per-row expectation.
	var subjectPresent []float64
	for i := range draft.Subjects {
		row := presentSubject(draft.Subjects[i])
		draft.Subjects[i].Confidence = SectionScore(row, ExpectedSubjectFields)
		subjectPresent = append(subjectPresent, row...)
	}
	expectedSubjects := ExpectedSubjectFields * max(1, len(draft.Subjects))

	draft.CandidateDetails.Confidence = SectionScore(candPresent, ExpectedCandidateFields)
	draft.OverallResult.Confidence = SectionScore(resultPresent, ExpectedResultFields)
	draft.DocumentInfo.Confidence = SectionScore(docPresent, ExpectedDocumentFields)
	subjectsScore := SectionScore(subjectPresent, expectedSubjects)

	quality = Clamp(quality)
	overall := Overall(e.weights,
		draft.CandidateDetails.Confidence,
		subjectsScore,
		draft.OverallResult.Confidence,
		draft.DocumentInfo.Confidence,
		quality)

	completeness := meanCompleteness([...]float64{
		sectionCompleteness(len(candPresent), ExpectedCandidateFields),
		sectionCompleteness(len(subjectPresent), expectedSubjects),
		sectionCompleteness(len(resultPresent), ExpectedResultFields),
		sectionCompleteness(len(docPresent), ExpectedDocumentFields),
	})

	return Scored{
		Draft:       draft,
		Overall:     overall,
		Explanation: Explanation(overall, completeness, quality, len(draft.Subjects)),
		Advisories:  Advisories(overall),
	}
}

func meanCompleteness(ratios [4]float64) float64 {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return sum / float64(len(ratios))
}

// fieldConf resolves a populated field's model-reported confidence, falling
// back to a neutral default when the model omitted it.
func fieldConf(m map[string]float64, field string) float64 {
	if c, ok := m[field]; ok {
		return Clamp(c)
	}
	return defaultFieldConfidence
}

// presentField pairs a schema field name with whether the draft populated it.
// Collectors list fields in schema order so summation order (and therefore
// the float result) is identical across calls.
type presentField struct {
	name string
	set  bool
}

func collect(fields []presentField, conf map[string]float64) []float64 {
	var out []float64
	for _, f := range fields {
		if f.set {
			out = append(out, fieldConf(conf, f.name))
		}
	}
	return out
}

func presentCandidate(c types.CandidateDetails) []float64 {
	return collect([]presentField{
		{"name", c.Name != nil},
		{"father_name", c.FatherName != nil},
		{"mother_name", c.MotherName != nil},
		{"roll_no", c.RollNo != nil},
		{"registration_no", c.RegistrationNo != nil},
		{"date_of_birth", c.DateOfBirth != nil},
		{"exam_year", c.ExamYear != nil},
		{"board_university", c.BoardUniversity != nil},
		{"institution", c.Institution != nil},
	}, c.FieldConfidence)
}

func presentSubject(s types.SubjectMark) []float64 {
	return collect([]presentField{
		{"subject", s.Subject != nil},
		{"max_marks", s.MaxMarks != nil},
		{"obtained_marks", s.ObtainedMarks != nil},
		{"grade", s.Grade != nil},
	}, s.FieldConfidence)
}

func presentResult(r types.OverallResult) []float64 {
	return collect([]presentField{
		{"result", r.Result != nil},
		{"grade", r.Grade != nil},
		{"division", r.Division != nil},
		{"percentage", r.Percentage != nil},
		{"cgpa", r.CGPA != nil},
		{"total_marks", r.TotalMarks != nil},
		{"max_total_marks", r.MaxTotalMarks != nil},
	}, r.FieldConfidence)
}

func presentDocument(d types.DocumentInfo) []float64 {
	return collect([]presentField{
		{"issue_date", d.IssueDate != nil},
		{"issue_place", d.IssuePlace != nil},
		{"document_type", d.DocumentType != nil},
	}, d.FieldConfidence)
}
