package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures process-level configuration so main stays lean. Values come
// from the environment only.
type Config struct {
	Addr string `env:"VETGATE_ADDR" envDefault:":8080"`

	// Remote platform API.
	PlatformBaseURL string        `env:"PLATFORM_API_URL" envDefault:"https://api.veterans-platform.org"`
	PlatformAnonKey string        `env:"PLATFORM_ANON_KEY"`
	RequestTimeout  time.Duration `env:"PLATFORM_REQUEST_TIMEOUT" envDefault:"15s"`

	// Optional Redis-backed session persistence. Empty means in-memory.
	RedisURL string `env:"REDIS_URL"`

	// Registration policy knobs. The extended profile turns on the demographic
	// fields (gender, marital status, activity type) and makes patronymic and
	// emergency contacts required; document requirement is independent.
	ExtendedProfile  bool `env:"EXTENDED_PROFILE"`
	RequireDocuments bool `env:"REQUIRE_DOCUMENTS"`

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"uk"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
