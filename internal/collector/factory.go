package collector

import (
	"fmt"

	"github.com/qepting91/dex-ai/internal/config"
	"github.com/qepting91/dex-ai/internal/domain"
)

// NewSource selects the correct implementation based on the mode
func NewSource(cfg config.Config) (domain.Source, error) {
	switch cfg.Mode {
	case "public":
		if cfg.UserAgent == "" {
			return nil, fmt.Errorf("DEX_USER_AGENT is required for public mode")
		}
		return NewPublicClient(cfg.BaseURL, cfg.UserAgent, cfg.RatePerSecond, cfg.BatchSize), nil
	case "mock":
		return NewMockClient(cfg.CatalogSize), nil
	default:
		return nil, fmt.Errorf("unknown DEX_MODE: %s (use 'public' or 'mock')", cfg.Mode)
	}
}
