package confidence

// SectionWeights is the fixed weighting of section confidences in the
// overall score. The four weights must sum to exactly 1.0.
type SectionWeights struct {
	CandidateDetails float64
	Subjects         float64
	OverallResult    float64
	DocumentInfo     float64
}

// Sum returns the total of the four weights. Terms are grouped so the
// default weights' partial sums are exact in float64 and the invariant
// check can use strict equality.
func (w SectionWeights) Sum() float64 {
	return (w.CandidateDetails + w.OverallResult) + (w.Subjects + w.DocumentInfo)
}

// DefaultWeights weights subject marks highest, then candidate identity,
// then the aggregate result, then document metadata.
var DefaultWeights = SectionWeights{
	CandidateDetails: 0.30,
	Subjects:         0.40,
	OverallResult:    0.20,
	DocumentInfo:     0.10,
}

// Schema-defined expected field counts per section. Subjects is per row.
const (
	ExpectedCandidateFields = 9
	ExpectedSubjectFields   = 4
	ExpectedResultFields    = 7
	ExpectedDocumentFields  = 3
)

// Thresholds are the advisory confidence bands for caller-facing
// interpretation. They never alter the numeric score.
//
// The accuracy tiers (HighAccuracy/Standard/Basic) and ManualReviewBelow
// are two independent axes, not a single ladder: a score in [0.60, 0.70)
// sits in the Basic tier without triggering the review flag, and a score
// in [0.50, 0.60) is simultaneously Basic and review-recommended. The
// overlap is intentional.
var Thresholds = struct {
	HighAccuracy      float64
	Standard          float64
	Basic             float64
	ManualReviewBelow float64
}{
	HighAccuracy:      0.85,
	Standard:          0.70,
	Basic:             0.50,
	ManualReviewBelow: 0.60,
}

// Advisories returns the band annotations for an overall score: the
// accuracy tiers the score reaches plus the manual-review flag when the
// score falls below the review threshold.
func Advisories(overall float64) []string {
	var out []string
	if overall >= Thresholds.HighAccuracy {
		out = append(out, "high_accuracy")
	}
	if overall >= Thresholds.Standard {
		out = append(out, "standard_processing")
	}
	if overall >= Thresholds.Basic {
		out = append(out, "basic_extraction")
	}
	if overall < Thresholds.ManualReviewBelow {
		out = append(out, "manual_review_recommended")
	}
	return out
}
