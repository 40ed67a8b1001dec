package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. The assistant-facing
// values (language, tone, model) are read every time a prompt or deadline is
// computed, so callers receive the struct by value.
type Config struct {
	Language      string  `yaml:"language"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
	AssistantName string  `yaml:"assistant_name"`
	Tone          string  `yaml:"tone"`
	Currency      string  `yaml:"currency"`
	SLAMinutes    int     `yaml:"sla_minutes"`
	PendingTTLSec int     `yaml:"pending_ttl_seconds"`

	Database struct {
		Driver string `yaml:"driver"` // "sqlite3" or "postgres"
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Language:      "es",
		Model:         "gpt-4o-mini",
		Temperature:   0.4,
		AssistantName: "RAIVA",
		Tone:          "Amable y profesional; breve, guiado.",
		Currency:      "USD",
		SLAMinutes:    30,
		PendingTTLSec: 60,
	}
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "data/app.db"
	return cfg
}

// Load reads the configuration file at path over the defaults and then
// applies environment overrides. A missing file is not an error; a malformed
// one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("ASSISTANT_NAME"); v != "" {
		cfg.AssistantName = v
	}
	if v := os.Getenv("TONE"); v != "" {
		cfg.Tone = v
	}
	if v := os.Getenv("CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("SLA_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SLAMinutes = n
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
}
