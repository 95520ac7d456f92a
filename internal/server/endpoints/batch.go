package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/api"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/svcctx"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// BatchItem is the outcome for one file in a batch request. Exactly one of
// Record and Error is set.
type BatchItem struct {
	FileName string              `json:"file_name"`
	Record   *types.ScoredRecord `json:"record,omitempty"`
	Error    *ErrorResponse      `json:"error,omitempty"`
}

// BatchExtractResponse carries per-file results in upload order.
type BatchExtractResponse struct {
	Results []BatchItem `json:"results"`
}

// BatchExtractEndpoint handles POST /api/batch-extract.
type BatchExtractEndpoint struct{}

var _ api.Endpoint = (*BatchExtractEndpoint)(nil)

func (e *BatchExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/batch-extract", e.handler
}

func (e *BatchExtractEndpoint) RequiresPipeline() bool { return true }

// handler godoc
//
//	@Summary		Extract structured data from multiple marksheets
//	@Description	Upload up to five marksheet files; each slot in the response carries either a record or that file's error
//	@Tags			extraction
//	@Accept			mpfd
//	@Produce		json
//	@Param			files	formData	file	true	"Marksheet files (max 5)"
//	@Success		200	{object}	BatchExtractResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/batch-extract [post]
func (e *BatchExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	limits := limitsFrom(r)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}
	if len(files) > limits.BatchMaxFiles {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("maximum %d files allowed for batch processing", limits.BatchMaxFiles))
		return
	}

	// Per-file validation failures take their result slot instead of
	// rejecting the whole batch.
	items := make([]BatchItem, len(files))
	reqs := make([]types.ExtractionRequest, 0, len(files))
	reqSlots := make([]int, 0, len(files))
	for i, fh := range files {
		items[i].FileName = fh.Filename
		req, err := requestFromUpload(fh, limits.MaxFileSizeBytes)
		if err != nil {
			items[i].Error = &ErrorResponse{Error: err.Error(), Kind: types.ErrorKind(err)}
			continue
		}
		reqs = append(reqs, req)
		reqSlots = append(reqSlots, i)
	}

	p := svcctx.PipelineFrom(r.Context())
	results := p.RunBatch(r.Context(), reqs, limits.BatchConcurrency)
	for j, res := range results {
		slot := reqSlots[j]
		if res.Err != nil {
			items[slot].Error = &ErrorResponse{Error: res.Err.Error(), Kind: types.ErrorKind(res.Err)}
			continue
		}
		items[slot].Record = res.Record
	}

	failed := 0
	for _, item := range items {
		if item.Error != nil {
			failed++
		}
	}
	if failed == len(items) {
		details := make([]string, 0, len(items))
		for i, item := range items {
			details = append(details, fmt.Sprintf("file %d (%s): %s", i+1, item.FileName, item.Error.Error))
		}
		writeError(w, http.StatusUnprocessableEntity,
			"all files failed processing: "+strings.Join(details, "; "))
		return
	}

	writeJSON(w, http.StatusOK, BatchExtractResponse{Results: items})
}

func (e *BatchExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "batch-extract <file>...",
		Short: "Extract structured data from up to five marksheet files",
		Args:  cobra.RangeArgs(1, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			uploads := make([]api.UploadFile, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				uploads = append(uploads, api.UploadFile{Name: filepath.Base(path), Data: data})
			}

			client := api.NewClient(getServerURL())
			var resp BatchExtractResponse
			if err := client.PostFiles(cmd.Context(), "/api/batch-extract", "files", uploads, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
