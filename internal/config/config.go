// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config holds the application configuration. It can be loaded from a JSON
// file; missing values fall back to environment variables and defaults.
type Config struct {
	// Paths
	ReferentialPath string `json:"referential,omitempty"` // Path to the referential JSON (empty: built-in)
	CacheDir        string `json:"cache_dir,omitempty"`   // Embedding cache directory

	// Models
	EmbeddingModel  string `json:"embedding_model,omitempty"`
	GenerationModel string `json:"generation_model,omitempty"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL URL for the analysis store
	TopK        int    `json:"top_k,omitempty" validate:"gte=0,lte=50"` // RAG snippets retrieved
	Verbose     bool   `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field constraints and that referenced paths exist.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.ReferentialPath != "" {
		if _, err := os.Stat(c.ReferentialPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: referential file not found: %s", c.ReferentialPath)
		}
	}

	return nil
}

// FillFromEnv fills unset fields from the environment and applies defaults.
func (c *Config) FillFromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.ReferentialPath == "" {
		c.ReferentialPath = os.Getenv("REFERENTIAL_PATH")
	}
	if c.CacheDir == "" {
		c.CacheDir = os.Getenv("SKILL_PROFILER_CACHE_DIR")
	}
	if c.CacheDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.CacheDir = filepath.Join(home, ".cache", "skill-profiler")
		} else {
			c.CacheDir = filepath.Join(os.TempDir(), "skill-profiler")
		}
	}
}
