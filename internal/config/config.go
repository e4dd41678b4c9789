// Package config loads doctranslate settings from YAML with environment
// fallbacks for API credentials.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/doc-translate/internal/ai"
)

// Config holds all doctranslate configuration.
type Config struct {
	Backend      string       `yaml:"backend"`
	Gemini       GeminiConfig `yaml:"gemini"`
	OpenAI       OpenAIConfig `yaml:"openai"`
	Google       GoogleConfig `yaml:"google"`
	Concurrency  int          `yaml:"concurrency"`
	PreviewLines int          `yaml:"preview_lines"`
	OCR          OCRConfig    `yaml:"ocr"`
	Server       ServerConfig `yaml:"server"`
	LogLevel     string       `yaml:"log_level"`
	WorkDir      string       `yaml:"work_dir"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type GoogleConfig struct {
	Tries int `yaml:"tries"`
}

// OCRConfig controls the scanned-document path.
type OCRConfig struct {
	Language string `yaml:"language"`
	DPI      int    `yaml:"dpi"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

// Default returns a config with every default applied and environment
// fallbacks resolved.
func Default() *Config {
	c := &Config{}
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.Backend == "" {
		c.Backend = "google"
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = firstEnv("GOOGLE_API_KEY", "GEMINI_API_KEY")
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = os.Getenv("OPENAI_MODEL")
	}
	if c.Google.Tries <= 0 {
		c.Google.Tries = 2
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.PreviewLines <= 0 {
		c.PreviewLines = 3
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.OCR.DPI <= 0 {
		c.OCR.DPI = 300
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadMB <= 0 {
		c.Server.MaxUploadMB = 25
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfigFile reads a YAML config file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.defaults()
	return cfg, nil
}

// Load reads path when non-empty, otherwise returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadConfigFile(path)
}

// Backend options for ai.New.
func (c *Config) BackendOptions() ai.Options {
	return ai.Options{
		Provider:      c.Backend,
		GeminiAPIKey:  c.Gemini.APIKey,
		GeminiModel:   c.Gemini.Model,
		OpenAIAPIKey:  c.OpenAI.APIKey,
		OpenAIBaseURL: c.OpenAI.BaseURL,
		OpenAIModel:   c.OpenAI.Model,
		GoogleTries:   c.Google.Tries,
	}
}

// MaxUploadBytes is the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// SlogLevel parses LogLevel, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
