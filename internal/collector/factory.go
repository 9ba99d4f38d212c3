package collector

import (
	"fmt"

	"github.com/sampleworks/reddit-collector/internal/config"
	"github.com/sampleworks/reddit-collector/internal/domain"
)

// FromConfig selects the correct implementation based on the configured mode.
func FromConfig(cfg *config.Config, opts ...Option) (domain.Collector, error) {
	switch cfg.Mode {
	case "api":
		return New(
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.Username,
			cfg.Password,
			cfg.UserAgent,
			opts...,
		)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api' or 'mock')", cfg.Mode)
	}
}
