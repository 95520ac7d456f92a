package confidence

import "strings"

// Explanation builds the human-readable confidence explanation. It is a
// deterministic function of the scoring inputs - never free text from the
// external model.
func Explanation(overall, completeness, quality float64, subjectCount int) string {
	parts := make([]string, 0, 5)

	switch {
	case overall >= 0.9:
		parts = append(parts, "very high confidence extraction")
	case overall >= 0.75:
		parts = append(parts, "high confidence extraction")
	case overall >= 0.6:
		parts = append(parts, "good confidence extraction")
	case overall >= 0.4:
		parts = append(parts, "moderate confidence extraction")
	default:
		parts = append(parts, "low confidence extraction")
	}

	// Name the dominating limiter when one of the two adjustment inputs is
	// weak. Quality wins ties because it caps every section at once.
	switch {
	case quality < 0.6 && quality <= completeness:
		parts = append(parts, "score limited by text extraction quality")
	case completeness < 0.6:
		parts = append(parts, "score limited by field completeness")
	}

	switch {
	case quality >= 0.8:
		parts = append(parts, "clear text recognition")
	case quality >= 0.6:
		parts = append(parts, "good text clarity")
	default:
		parts = append(parts, "text recognition challenges")
	}

	switch {
	case completeness >= 0.8:
		parts = append(parts, "complete field extraction")
	case completeness >= 0.6:
		parts = append(parts, "most fields extracted successfully")
	default:
		parts = append(parts, "partial field extraction")
	}

	switch {
	case subjectCount >= 5:
		parts = append(parts, "comprehensive subject data found")
	case subjectCount >= 3:
		parts = append(parts, "good subject coverage")
	case subjectCount >= 1:
		parts = append(parts, "basic subject information found")
	default:
		parts = append(parts, "no subject rows found")
	}

	return strings.Join(parts, "; ")
}
