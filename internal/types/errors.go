package types

import "errors"

// Pipeline error kinds. Stages wrap these with %w so callers can map a
// failure back to the stage that produced it; the kind is never coerced
// into a generic failure on the way up.
var (
	// ErrUnsupportedFormat - the declared media type is not jpeg/png/pdf.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed - every applicable text acquisition strategy errored.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrStructuringFailed - the external model was unreachable or all
	// retry attempts were exhausted.
	ErrStructuringFailed = errors.New("structuring failed")

	// ErrSchemaViolation - the model responded but its output could not be
	// parsed into the marksheet schema, even after a correction attempt.
	ErrSchemaViolation = errors.New("model output violates marksheet schema")

	// ErrConfiguration - a required credential or setting is missing.
	ErrConfiguration = errors.New("configuration error")
)

// ErrorKind returns a stable string tag for a pipeline error, or "internal"
// for anything unrecognized. Used by the service layer for wire responses.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrExtractionFailed):
		return "extraction_failed"
	case errors.Is(err, ErrStructuringFailed):
		return "structuring_failed"
	case errors.Is(err, ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, ErrConfiguration):
		return "configuration_error"
	default:
		return "internal"
	}
}
