package main

import (
	"github.com/spf13/cobra"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/api"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "marksheet",
	Short: "AI-powered marksheet extraction service",
	Long: `Marksheet extracts structured data from educational marksheet images
and PDFs using OCR and an LLM structuring step.

The pipeline includes:
  - Tesseract OCR for images and scanned PDF pages
  - Direct text-layer extraction for digital PDFs
  - LLM structuring into a fixed marksheet schema
  - Deterministic per-field and overall confidence scoring`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.marksheet/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
