package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries Reddit credentials and runtime settings. Username and
// password are optional; without them the API grants read-only access at a
// lower request allowance.
type Config struct {
	ClientID     string `env:"REDDIT_CLIENT_ID"`
	ClientSecret string `env:"REDDIT_CLIENT_SECRET"`
	Username     string `env:"REDDIT_USERNAME"`
	Password     string `env:"REDDIT_PASSWORD"`
	UserAgent    string `env:"REDDIT_USER_AGENT"`
	Mode         string `env:"COLLECTOR_MODE" envDefault:"api"`
	Port         string `env:"PORT" envDefault:"8080"`
}

// Load reads .env (if present) and the environment. Credentials are only
// required in api mode; every missing variable is reported at once.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Mode == "api" {
		var missing []string
		if cfg.ClientID == "" {
			missing = append(missing, "REDDIT_CLIENT_ID")
		}
		if cfg.ClientSecret == "" {
			missing = append(missing, "REDDIT_CLIENT_SECRET")
		}
		if cfg.UserAgent == "" {
			missing = append(missing, "REDDIT_USER_AGENT")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
		}
	}
	return cfg, nil
}
