package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.yaml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", path, err)
		}
		if cfg.API.Endpoint != DefaultEndpoint {
			t.Errorf("Endpoint = %q, want %q", cfg.API.Endpoint, DefaultEndpoint)
		}
		if cfg.API.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0 (no timeout)", cfg.API.Timeout)
		}
		if cfg.UserURL() != DefaultEndpoint {
			t.Errorf("UserURL() = %q, want the bare endpoint", cfg.UserURL())
		}
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  endpoint: "http://127.0.0.1:9000/api"
  results: 25
  timeout: 5s
log:
  level: debug
mock:
  port: 9000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.Endpoint != "http://127.0.0.1:9000/api" {
		t.Errorf("Endpoint = %q", cfg.API.Endpoint)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.API.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Unset keys keep their defaults.
	if cfg.Mock.Host != "127.0.0.1" {
		t.Errorf("Mock.Host = %q, want default", cfg.Mock.Host)
	}
	if cfg.Mock.Results != 10 {
		t.Errorf("Mock.Results = %d, want default 10", cfg.Mock.Results)
	}
	if got, want := cfg.UserURL(), "http://127.0.0.1:9000/api?results=25"; got != want {
		t.Errorf("UserURL() = %q, want %q", got, want)
	}
	if got, want := cfg.MockAddr(), "127.0.0.1:9000"; got != want {
		t.Errorf("MockAddr() = %q, want %q", got, want)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty endpoint", func(c *Config) { c.API.Endpoint = "" }},
		{"relative endpoint", func(c *Config) { c.API.Endpoint = "/api" }},
		{"negative results", func(c *Config) { c.API.Results = -1 }},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
		{"port zero", func(c *Config) { c.Mock.Port = 0 }},
		{"port too large", func(c *Config) { c.Mock.Port = 70000 }},
		{"no mock results", func(c *Config) { c.Mock.Results = 0 }},
	}

	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUserURLKeepsExistingQuery(t *testing.T) {
	cfg := defaultConfig()
	cfg.API.Endpoint = "https://randomuser.me/api?nat=gb"
	cfg.API.Results = 3

	if got, want := cfg.UserURL(), "https://randomuser.me/api?nat=gb&results=3"; got != want {
		t.Errorf("UserURL() = %q, want %q", got, want)
	}
}
