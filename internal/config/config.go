package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default Gemini OpenAI-compatible endpoint
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Config holds the full service configuration, loaded from environment
// variables with an optional YAML overlay for agent settings.
type Config struct {
	Port       int    `yaml:"port"`
	SQLitePath string `yaml:"sqlite_path"`
	JWTSecret  string `yaml:"-"` // never read from file

	Model ModelConfig `yaml:"model"`
}

// ModelConfig configures the language model client.
type ModelConfig struct {
	APIKey       string `yaml:"-"` // never read from file
	BaseURL      string `yaml:"base_url"`
	Name         string `yaml:"name"`
	Instructions string `yaml:"instructions"` // override for the built-in system prompt
}

// Load builds a Config from the environment. If TASKCHAT_CONFIG points at a
// YAML file (or ./taskchat.yaml exists), its values are applied first and
// environment variables override them.
func Load() (Config, error) {
	c := Config{
		Port:       8080,
		SQLitePath: "./data/taskchat.db",
		Model: ModelConfig{
			BaseURL: defaultBaseURL,
			Name:    "gemini-pro",
		},
	}

	path := os.Getenv("TASKCHAT_CONFIG")
	if path == "" {
		if _, err := os.Stat("taskchat.yaml"); err == nil {
			path = "taskchat.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = p
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.SQLitePath = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.Model.BaseURL = v
	}
	if v := os.Getenv("MODEL_NAME"); v != "" {
		c.Model.Name = v
	}

	c.JWTSecret = os.Getenv("JWT_SECRET")
	if c.JWTSecret == "" {
		return c, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	c.Model.APIKey = os.Getenv("GEMINI_API_KEY")
	if c.Model.APIKey == "" {
		return c, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return c, nil
}
