package config

import "github.com/caarlos0/env/v9"

// Config holds the NAJDENO_* settings shared by the server and the CLI.
type Config struct {
	DBPath       string `env:"NAJDENO_DB" envDefault:"najdeno.sqlite3"`
	Addr         string `env:"NAJDENO_ADDR" envDefault:":5000"`
	LogFile      string `env:"NAJDENO_LOG"`
	JWTSecret    string `env:"NAJDENO_JWT_SECRET"` // empty: generated and kept in the database
	BaseURL      string `env:"NAJDENO_BASE_URL" envDefault:"http://localhost:5000"`
	CookieSecure bool   `env:"NAJDENO_COOKIE_SECURE" envDefault:"false"`
}

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
