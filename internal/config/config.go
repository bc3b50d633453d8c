// Package config loads userdeck settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the public randomuser.me API.
const DefaultEndpoint = "https://randomuser.me/api"

type Config struct {
	API  APIConfig  `yaml:"api"`
	Log  LogConfig  `yaml:"log"`
	Mock MockConfig `yaml:"mock"`
}

type APIConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Results  int           `yaml:"results"`
	Timeout  time.Duration `yaml:"timeout"`
	Token    string        `yaml:"token"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type MockConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Seed    string `yaml:"seed"`
	Results int    `yaml:"results"`
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
		},
		Log: LogConfig{
			File:  filepath.Join(os.TempDir(), "userdeck.log"),
			Level: "info",
		},
		Mock: MockConfig{
			Host:    "127.0.0.1",
			Port:    8081,
			Seed:    "userdeck",
			Results: 10,
		},
	}
}

// Load reads path on top of the defaults. A missing file, or an empty path,
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return errors.New("api.endpoint is empty")
	}
	u, err := url.Parse(c.API.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.endpoint %q is not an absolute URL", c.API.Endpoint)
	}
	if c.API.Results < 0 {
		return fmt.Errorf("api.results must not be negative, got %d", c.API.Results)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Mock.Port < 1 || c.Mock.Port > 65535 {
		return fmt.Errorf("mock.port %d out of range", c.Mock.Port)
	}
	if c.Mock.Results < 1 {
		return fmt.Errorf("mock.results must be at least 1, got %d", c.Mock.Results)
	}
	return nil
}

// UserURL is the URL a load fetches: the endpoint, plus results=N when a
// result count is configured.
func (c *Config) UserURL() string {
	if c.API.Results == 0 {
		return c.API.Endpoint
	}
	u, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return c.API.Endpoint
	}
	q := u.Query()
	q.Set("results", strconv.Itoa(c.API.Results))
	u.RawQuery = q.Encode()
	return u.String()
}

// MockAddr is the listen address of the mock user API.
func (c *Config) MockAddr() string {
	return fmt.Sprintf("%s:%d", c.Mock.Host, c.Mock.Port)
}
