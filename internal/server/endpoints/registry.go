package endpoints

import (
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Service endpoints
		&HealthEndpoint{},
		&FormatsEndpoint{},

		// Extraction endpoints
		&ExtractEndpoint{},
		&BatchExtractEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},

		// Static demo page (catch-all, must be last)
		&StaticEndpoint{},
	}
}
