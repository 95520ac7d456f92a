package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writePipelineError maps a pipeline error to an HTTP status and writes it.
func writePipelineError(w http.ResponseWriter, err error) {
	kind := types.ErrorKind(err)
	writeJSON(w, statusForKind(kind), ErrorResponse{Error: err.Error(), Kind: kind})
}

// statusForKind maps a pipeline error kind to an HTTP status code.
// Upstream model failures surface as 502 so callers can distinguish them
// from client mistakes and local faults.
func statusForKind(kind string) int {
	switch kind {
	case "unsupported_format":
		return http.StatusBadRequest
	case "extraction_failed":
		return http.StatusUnprocessableEntity
	case "structuring_failed", "schema_violation":
		return http.StatusBadGateway
	case "configuration_error":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
