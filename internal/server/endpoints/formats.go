package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/api"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/svcctx"
)

// FormatsResponse lists accepted upload formats and the active limits.
type FormatsResponse struct {
	SupportedFormats []string `json:"supported_formats"`
	MaxFileSizeMB    int64    `json:"max_file_size_mb"`
	MaxBatchFiles    int      `json:"max_batch_files"`
}

// FormatsEndpoint handles GET /api/supported-formats.
type FormatsEndpoint struct{}

var _ api.Endpoint = (*FormatsEndpoint)(nil)

func (e *FormatsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/supported-formats", e.handler
}

func (e *FormatsEndpoint) RequiresPipeline() bool { return false }

// handler godoc
//
//	@Summary		List supported upload formats
//	@Description	Accepted file formats plus the size and batch limits in effect
//	@Tags			service
//	@Produce		json
//	@Success		200	{object}	FormatsResponse
//	@Router			/api/supported-formats [get]
func (e *FormatsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := FormatsResponse{
		SupportedFormats: []string{"JPG", "JPEG", "PNG", "PDF"},
		MaxFileSizeMB:    10,
		MaxBatchFiles:    5,
	}
	if cm := svcctx.ConfigManagerFrom(r.Context()); cm != nil {
		limits := cm.Get().Limits
		resp.MaxFileSizeMB = limits.MaxFileSizeBytes / (1024 * 1024)
		resp.MaxBatchFiles = limits.BatchMaxFiles
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *FormatsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported upload formats and limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp FormatsResponse
			if err := client.Get(cmd.Context(), "/api/supported-formats", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
