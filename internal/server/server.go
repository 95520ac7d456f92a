// Package server hosts the marksheet extraction HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/api"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/config"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/confidence"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/extract"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/pipeline"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/server/endpoints"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/structurer"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/svcctx"
)

// Server is the marksheet extraction HTTP server.
type Server struct {
	httpServer *http.Server
	configMgr  *config.Manager
	logger     *slog.Logger

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu       sync.RWMutex
	services *svcctx.Services
	running  bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default from config manager)
	Host string
	// Port is the port to listen on (default from config manager)
	Port int
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// SwaggerSpecPath is the path to the generated swagger.json
	SwaggerSpecPath string
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	appCfg := cfg.ConfigManager.Get()
	if cfg.Host == "" {
		cfg.Host = appCfg.Server.Host
	}
	if cfg.Port == 0 {
		cfg.Port = appCfg.Server.Port
	}

	s := &Server{
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	s.services = &svcctx.Services{
		Pipeline:      buildPipeline(appCfg, cfg.Logger),
		ConfigManager: cfg.ConfigManager,
		Logger:        cfg.Logger,
	}

	// Rebuild the pipeline when config changes so new credentials or tool
	// paths take effect without a restart.
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		p := buildPipeline(c, cfg.Logger)
		s.mu.Lock()
		s.services = &svcctx.Services{
			Pipeline:      p,
			ConfigManager: cfg.ConfigManager,
			Logger:        cfg.Logger,
		}
		s.mu.Unlock()
		cfg.Logger.Info("pipeline rebuilt from config")
	})

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{SwaggerSpecPath: cfg.SwaggerSpecPath}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requirePipeline)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withServices(mux),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// buildPipeline assembles the extraction pipeline from configuration.
func buildPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	extractor := extract.NewExtractor(extract.Config{
		Tesseract:          cfg.OCR.TesseractPath,
		Pdftotext:          cfg.OCR.PdftotextPath,
		Pdftoppm:           cfg.OCR.PdftoppmPath,
		Lang:               cfg.OCR.Language,
		PSM:                cfg.OCR.PSM,
		OEM:                cfg.OCR.OEM,
		DPI:                cfg.OCR.DPI,
		MinDirectTextChars: cfg.OCR.MinDirectTextChars,
	}, logger)

	// A missing API key leaves the transport nil; structuring requests then
	// fail with a configuration error instead of a panic.
	var transport structurer.ChatTransport
	if key := cfg.ResolveAPIKey(); key != "" {
		transport = structurer.NewOpenAITransport(structurer.OpenAIConfig{
			APIKey:  key,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		})
	}

	st := structurer.New(structurer.Config{
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		MaxAttempts: uint(cfg.LLM.MaxRetries),
	}, transport, structurer.NewRateLimiter(cfg.LLM.RateLimit), logger)

	return pipeline.New(extractor, st, confidence.NewEngine(), logger)
}

// Start starts the HTTP server. It blocks until the context is cancelled
// or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Services returns the current service set.
func (s *Server) Services() *svcctx.Services {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), s.Services())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePipeline is middleware that ensures the extraction pipeline exists.
// Returns 503 Service Unavailable otherwise.
func (s *Server) requirePipeline(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.PipelineFrom(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"extraction pipeline not initialized"}`))
			return
		}
		next(w, r)
	}
}
