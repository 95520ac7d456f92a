package structurer

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert at extracting structured data from educational marksheets and transcripts.

Your task is to analyze the provided text and extract information into a well-structured JSON format.

IMPORTANT INSTRUCTIONS:
1. Extract only information that is clearly present in the text
2. Use null for fields that are not found or unclear
3. For confidence scores, consider text clarity, field completeness, and extraction certainty
4. Be especially careful with numbers - ensure marks, grades, and percentages are accurate
5. Normalize date formats to DD/MM/YYYY where possible
6. Identify the board/university and institution names carefully
7. For subjects, extract exact subject names as written
8. Report a confidence between 0.0 and 1.0 for every field you extract

Return ONLY valid JSON with no additional text or explanations.`

const extractionTemplate = `Extract marksheet data from this text and return it in the following JSON structure:

{
    "candidate_details": {
        "name": "Full name of candidate",
        "father_name": "Father's name",
        "mother_name": "Mother's name",
        "roll_no": "Roll number",
        "registration_no": "Registration number",
        "date_of_birth": "Date of birth (DD/MM/YYYY format)",
        "exam_year": "Examination year",
        "board_university": "Board or University name",
        "institution": "School/College/Institution name",
        "field_confidence": {"name": 0.95, "roll_no": 0.9}
    },
    "subjects": [
        {
            "subject": "Subject name",
            "max_marks": 100.0,
            "obtained_marks": 85.0,
            "grade": "Grade if present",
            "field_confidence": {"subject": 0.95, "obtained_marks": 0.9}
        }
    ],
    "overall_result": {
        "result": "Pass/Fail/etc",
        "grade": "Overall grade",
        "division": "Division/Class",
        "percentage": 85.5,
        "cgpa": 8.5,
        "total_marks": 425.0,
        "max_total_marks": 500.0,
        "field_confidence": {"result": 0.95, "percentage": 0.9}
    },
    "document_info": {
        "issue_date": "DD/MM/YYYY",
        "issue_place": "Issue place",
        "document_type": "Mark Sheet/Certificate/etc",
        "field_confidence": {"document_type": 0.9}
    }
}

IMPORTANT: Use null for fields that are not found or unclear. The field_confidence objects must contain one entry per non-null field, each a number between 0.0 and 1.0.

MARKSHEET TEXT:
%s`

// extractionPrompt builds the user message for a structuring request.
func extractionPrompt(text string) string {
	return fmt.Sprintf(extractionTemplate, text)
}

// repairPrompt asks the model to fix output that failed schema validation.
func repairPrompt(lastOutput string, issue error) string {
	lastOutput = strings.TrimSpace(lastOutput)
	if len(lastOutput) > 12000 {
		lastOutput = lastOutput[:12000] + "\n...[truncated]"
	}
	return fmt.Sprintf(`Your previous response did not match the required JSON structure.

Validation issue:
%v

Your previous output:
%s

Return ONLY corrected valid JSON with the exact structure requested, no markdown and no commentary.`, issue, lastOutput)
}
