// Package schema holds the fixed marksheet output schema and validates
// model responses against it. The external model's output is untrusted
// even on a successful call; nothing downstream assumes its shape until
// validation passes.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Marksheet is the canonical JSON schema for the structurer's output.
// Confidence values are deliberately unbounded here: out-of-range
// model-reported confidences are clamped by the confidence engine rather
// than rejected at the schema gate.
const Marksheet = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "marksheet_extraction",
	"type": "object",
	"properties": {
		"candidate_details": {
			"type": "object",
			"properties": {
				"name": {"type": ["string", "null"]},
				"father_name": {"type": ["string", "null"]},
				"mother_name": {"type": ["string", "null"]},
				"roll_no": {"type": ["string", "null"]},
				"registration_no": {"type": ["string", "null"]},
				"date_of_birth": {"type": ["string", "null"]},
				"exam_year": {"type": ["string", "null"]},
				"board_university": {"type": ["string", "null"]},
				"institution": {"type": ["string", "null"]},
				"field_confidence": {
					"type": "object",
					"additionalProperties": {"type": "number"}
				}
			},
			"additionalProperties": false
		},
		"subjects": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"subject": {"type": ["string", "null"]},
					"max_marks": {"type": ["number", "null"]},
					"obtained_marks": {"type": ["number", "null"]},
					"grade": {"type": ["string", "null"]},
					"field_confidence": {
						"type": "object",
						"additionalProperties": {"type": "number"}
					}
				},
				"additionalProperties": false
			}
		},
		"overall_result": {
			"type": "object",
			"properties": {
				"result": {"type": ["string", "null"]},
				"grade": {"type": ["string", "null"]},
				"division": {"type": ["string", "null"]},
				"percentage": {"type": ["number", "null"]},
				"cgpa": {"type": ["number", "null"]},
				"total_marks": {"type": ["number", "null"]},
				"max_total_marks": {"type": ["number", "null"]},
				"field_confidence": {
					"type": "object",
					"additionalProperties": {"type": "number"}
				}
			},
			"additionalProperties": false
		},
		"document_info": {
			"type": "object",
			"properties": {
				"issue_date": {"type": ["string", "null"]},
				"issue_place": {"type": ["string", "null"]},
				"document_type": {"type": ["string", "null"]},
				"field_confidence": {
					"type": "object",
					"additionalProperties": {"type": "number"}
				}
			},
			"additionalProperties": false
		}
	},
	"required": ["candidate_details", "subjects", "overall_result", "document_info"],
	"additionalProperties": false
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func marksheetSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = jsonschema.CompileString("marksheet.json", Marksheet)
	})
	return compiled, compileErr
}

// ValidateMarksheet checks a parsed model response against the marksheet
// schema. The returned error carries the validator's detail for use in an
// error-correcting follow-up prompt.
func ValidateMarksheet(doc json.RawMessage) error {
	s, err := marksheetSchema()
	if err != nil {
		return fmt.Errorf("failed to compile marksheet schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("output is not valid JSON: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
