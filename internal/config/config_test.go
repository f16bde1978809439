package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "coachplan"
  user: "coachplan"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "coachplan" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "coachplan")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale should default to disabled")
	}
}

// TestEnvOverride verifies that COACHPLAN_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("COACHPLAN_SERVER_PORT", "9999")
	t.Setenv("COACHPLAN_DB_PASSWORD", "from-env")
	t.Setenv("COACHPLAN_AUTH_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("database.password = %q, want %q", cfg.Database.Password, "from-env")
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
}

// TestValidationErrors verifies that required fields are enforced.
func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing db host", `
server:
  port: 8080
database:
  port: 5432
  name: "x"
  user: "x"
auth:
  api_key: "k"
`},
		{"missing api key", `
server:
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "x"
  user: "x"
`},
		{"tailscale without hostname", `
database:
  host: "localhost"
  port: 5432
  name: "x"
  user: "x"
auth:
  api_key: "k"
tailscale:
  enabled: true
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestTailscaleNoPort verifies that server.port is optional when tsnet
// provides the listener.
func TestTailscaleNoPort(t *testing.T) {
	cfg, err := Load(writeTemp(t, `
database:
  host: "localhost"
  port: 5432
  name: "x"
  user: "x"
auth:
  api_key: "k"
tailscale:
  enabled: true
  hostname: "coachplan"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Tailscale.Enabled || cfg.Tailscale.Hostname != "coachplan" {
		t.Errorf("tailscale = %+v, want enabled with hostname", cfg.Tailscale)
	}
}

// TestDSN verifies connection string assembly and the sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "coachplan", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/coachplan?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
