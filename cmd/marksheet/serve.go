package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/config"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/server"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/server/endpoints"

	// Registers the generated OpenAPI spec.
	_ "github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/docs/swagger"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the marksheet extraction server",
	Long: `Start the marksheet extraction HTTP server.

The server provides:
  - POST /api/extract           - Extract one marksheet
  - POST /api/batch-extract     - Extract up to five marksheets
  - GET  /api/health            - Health check
  - GET  /api/supported-formats - Accepted formats and limits
  - GET  /swagger               - Interactive API documentation

Examples:
  marksheet serve                  # Start on default port 8000
  marksheet serve --port 3000      # Start on custom port
  marksheet serve --host 127.0.0.1 # Bind to loopback only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Load config with hot reload
		configMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		configMgr.WatchConfig()

		// Create server
		srv, err := server.New(server.Config{
			Host:            serveHost,
			Port:            servePort,
			ConfigManager:   configMgr,
			Logger:          logger,
			SwaggerSpecPath: endpoints.GetSwaggerSpecPath(),
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
