package endpoints

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/api"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/config"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/svcctx"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// maxFormMemory bounds in-memory multipart parsing; larger parts spill to disk.
const maxFormMemory = 16 << 20

// ExtractEndpoint handles POST /api/extract with a single multipart file.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/extract", e.handler
}

func (e *ExtractEndpoint) RequiresPipeline() bool { return true }

// handler godoc
//
//	@Summary		Extract structured data from one marksheet
//	@Description	Upload a marksheet image or PDF and receive the structured record with confidence scores
//	@Tags			extraction
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Marksheet file (JPG/PNG/PDF, max 10MB)"
//	@Success		200	{object}	types.ScoredRecord
//	@Failure		400	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/extract [post]
func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	limits := limitsFrom(r)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	req, err := requestFromUpload(files[0], limits.MaxFileSizeBytes)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	p := svcctx.PipelineFrom(r.Context())
	record, err := p.Run(r.Context(), req)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract structured data from a marksheet file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var record types.ScoredRecord
			err = client.PostFiles(cmd.Context(), "/api/extract", "file",
				[]api.UploadFile{{Name: filepath.Base(args[0]), Data: data}}, &record)
			if err != nil {
				return err
			}
			return api.Output(record)
		},
	}
}

// limitsFrom returns the active upload limits, falling back to defaults when
// no config manager is attached to the request.
func limitsFrom(r *http.Request) config.LimitsCfg {
	if cm := svcctx.ConfigManagerFrom(r.Context()); cm != nil {
		return cm.Get().Limits
	}
	return config.DefaultConfig().Limits
}

// requestFromUpload validates one multipart file and reads it into an
// extraction request. Validation failures carry pipeline error kinds so the
// caller can map them to HTTP statuses.
func requestFromUpload(fh *multipart.FileHeader, maxSize int64) (types.ExtractionRequest, error) {
	var req types.ExtractionRequest

	mediaType, err := mediaTypeFor(fh)
	if err != nil {
		return req, err
	}

	if fh.Size > maxSize {
		return req, fmt.Errorf("%w: file %s exceeds %d byte limit",
			types.ErrUnsupportedFormat, fh.Filename, maxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return req, fmt.Errorf("%w: opening upload %s: %v", types.ErrExtractionFailed, fh.Filename, err)
	}
	defer src.Close()

	// LimitReader guards against a misreported Size header.
	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return req, fmt.Errorf("%w: reading upload %s: %v", types.ErrExtractionFailed, fh.Filename, err)
	}
	if int64(len(data)) > maxSize {
		return req, fmt.Errorf("%w: file %s exceeds %d byte limit",
			types.ErrUnsupportedFormat, fh.Filename, maxSize)
	}

	return types.ExtractionRequest{
		Payload:   data,
		MediaType: mediaType,
		Filename:  fh.Filename,
	}, nil
}

// mediaTypeFor resolves the canonical media type from the file extension,
// falling back to the declared Content-Type header.
func mediaTypeFor(fh *multipart.FileHeader) (string, error) {
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".jpg", ".jpeg":
		return types.MediaTypeJPEG, nil
	case ".png":
		return types.MediaTypePNG, nil
	case ".pdf":
		return types.MediaTypePDF, nil
	}

	switch fh.Header.Get("Content-Type") {
	case types.MediaTypeJPEG, types.MediaTypePNG, types.MediaTypePDF:
		return fh.Header.Get("Content-Type"), nil
	}

	return "", fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, fh.Filename)
}
