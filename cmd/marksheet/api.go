package main

import (
	"github.com/spf13/cobra"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running marksheet server via HTTP.

These commands require a running server (marksheet serve).
Use --server to specify a custom server URL.

Examples:
  marksheet api health                  # Check server health
  marksheet api extract report.jpg      # Extract one marksheet
  marksheet api batch-extract a.jpg b.pdf
  marksheet api formats                 # List supported upload formats`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8000", "Server URL",
	)

	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.FormatsEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ExtractEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.BatchExtractEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerUIEndpoint{}).Command(getServerURL))

	rootCmd.AddCommand(apiCmd)
}
