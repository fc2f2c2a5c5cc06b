package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is fatal for the relay and for direct narration.
var ErrMissingAPIKey = errors.New("GOOGLE_GEMINI_API_KEY is not set")

type Config struct {
	Mode      string `yaml:"mode"` // "public" or "mock"
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`

	PageSize      int           `yaml:"page_size"`
	CatalogSize   int           `yaml:"catalog_size"`
	BatchSize     int           `yaml:"batch_size"`
	Retries       int           `yaml:"retries"`
	RetryBase     time.Duration `yaml:"retry_base"`
	RatePerSecond float64       `yaml:"rate_per_second"`

	InitialVisible int           `yaml:"initial_visible"`
	VisibleStep    int           `yaml:"visible_step"`
	TopN           int           `yaml:"top_n"`
	QuizDelay      time.Duration `yaml:"quiz_delay"`

	GeminiModel  string `yaml:"gemini_model"`
	GeminiAPIKey string `yaml:"-"`
	RelayURL     string `yaml:"relay_url"`
	Port         string `yaml:"port"`
}

func Default() Config {
	return Config{
		Mode:           "public",
		BaseURL:        "https://pokeapi.co/api/v2",
		UserAgent:      "dex-ai/1.0",
		PageSize:       200,
		CatalogSize:    1025,
		BatchSize:      20,
		Retries:        2,
		RetryBase:      300 * time.Millisecond,
		RatePerSecond:  50,
		InitialVisible: 50,
		VisibleStep:    50,
		TopN:           10,
		QuizDelay:      2 * time.Second,
		GeminiModel:    "gemini-2.0-flash",
		Port:           "3000",
	}
}

// Load layers defaults, an optional YAML file and the environment (.env
// included). A missing file at path is not an error.
func Load(path string) (Config, error) {
	godotenv.Load()
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Mode, "DEX_MODE")
	setString(&cfg.BaseURL, "DEX_BASE_URL")
	setString(&cfg.UserAgent, "DEX_USER_AGENT")
	setString(&cfg.RelayURL, "DEX_RELAY_URL")
	setString(&cfg.GeminiModel, "GEMINI_MODEL")
	setString(&cfg.GeminiAPIKey, "GOOGLE_GEMINI_API_KEY")
	setString(&cfg.Port, "PORT")

	if err := setInt(&cfg.BatchSize, "DEX_BATCH_SIZE"); err != nil {
		return err
	}
	if err := setInt(&cfg.Retries, "DEX_RETRIES"); err != nil {
		return err
	}
	if v := os.Getenv("DEX_RETRY_BASE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DEX_RETRY_BASE: %w", err)
		}
		cfg.RetryBase = d
	}
	if v := os.Getenv("DEX_RATE_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("DEX_RATE_PER_SECOND: %w", err)
		}
		cfg.RatePerSecond = f
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// MaxRetries bounds DEX_RETRIES.
const MaxRetries = 10

func (c Config) Validate() error {
	switch {
	case c.Mode != "public" && c.Mode != "mock":
		return fmt.Errorf("unknown DEX_MODE: %s (use 'public' or 'mock')", c.Mode)
	case c.PageSize <= 0, c.CatalogSize <= 0, c.BatchSize <= 0:
		return fmt.Errorf("page_size, catalog_size and batch_size must be positive")
	case c.Retries < 0 || c.Retries > MaxRetries:
		return fmt.Errorf("retries must be between 0 and %d", MaxRetries)
	case c.InitialVisible <= 0 || c.VisibleStep <= 0:
		return fmt.Errorf("initial_visible and visible_step must be positive")
	}
	return nil
}

// RequireAPIKey returns ErrMissingAPIKey when no Gemini credential is configured.
func (c Config) RequireAPIKey() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
