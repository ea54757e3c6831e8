package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.ReadHeaderTimeoutDuration() != 10*time.Second {
		t.Fatalf("expected default header timeout, got %s", cfg.ReadHeaderTimeoutDuration())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
readHeaderTimeout: 3s
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.ReadHeaderTimeoutDuration() != 3*time.Second {
		t.Fatalf("expected header timeout override, got %s", cfg.ReadHeaderTimeoutDuration())
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging format console, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging output file override, got %s", cfg.Logging.OutputFile)
	}

	cfg.SetAddress("  ")
	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("blank override replaced address: %s", cfg.Address)
	}
	cfg.SetAddress(":9999")
	if cfg.Address != ":9999" {
		t.Fatalf("expected address :9999, got %s", cfg.Address)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"Malformed YAML", "address: [\n"},
		{"Unparseable timeout", "readHeaderTimeout: soon\n"},
		{"Non-positive timeout", "readHeaderTimeout: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server-config.yaml")
			if err := os.WriteFile(path, []byte(tt.contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("LoadConfig() expected error")
			}
		})
	}
}
