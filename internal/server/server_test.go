package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/config"
)

func testConfigManager(t *testing.T) *config.Manager {
	t.Helper()
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("server:\n  port: 0\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return mgr
}

func TestNewRequiresConfigManager(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("New() without config manager succeeded, want error")
	}
}

func TestServerRoutes(t *testing.T) {
	srv, err := New(Config{ConfigManager: testConfigManager(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("GET /api/health: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if body["status"] != "healthy" {
			t.Errorf("status field = %v, want healthy", body["status"])
		}
	})

	t.Run("supported formats", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/supported-formats")
		if err != nil {
			t.Fatalf("GET /api/supported-formats: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("extract without file", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/extract", "multipart/form-data; boundary=x", nil)
		if err != nil {
			t.Fatalf("POST /api/extract: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})
}

func TestServerNotRunningInitially(t *testing.T) {
	srv, err := New(Config{ConfigManager: testConfigManager(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}
	if srv.Services() == nil || srv.Services().Pipeline == nil {
		t.Error("services not initialized")
	}
}
