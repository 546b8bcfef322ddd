// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/pkg/cmd"
)

// ErrMissingToken is returned by RequireToken when DISCORD_TOKEN is unset.
var ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

type Config struct {
	DiscordToken  string  `env:"DISCORD_TOKEN"`
	StoragePath   string  `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CommandPrefix string  `env:"COMMAND_PREFIX" envDefault:"!"`
	LogLevel      string  `env:"LOG_LEVEL" envDefault:"info"`
	SendRate      float64 `env:"SEND_RATE" envDefault:"5"`
	DefaultParser string  `env:"DEFAULT_PARSER" envDefault:"spaces"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, falling back to system environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.CommandPrefix) == "" {
		return nil, errors.New("COMMAND_PREFIX must not be blank")
	}
	if cfg.SendRate <= 0 {
		return nil, fmt.Errorf("SEND_RATE must be positive, got %v", cfg.SendRate)
	}
	if _, err := cmd.ParseParserType(cfg.DefaultParser); err != nil {
		return nil, fmt.Errorf("DEFAULT_PARSER: %w", err)
	}
	return &cfg, nil
}

// RequireToken fails when the Discord token is missing.
func (c *Config) RequireToken() error {
	if c.DiscordToken == "" {
		return ErrMissingToken
	}
	return nil
}

// Parser returns the default parser used for commands that do not
// override it.
func (c *Config) Parser() cmd.Parser {
	t, err := cmd.ParseParserType(c.DefaultParser)
	if err != nil {
		return cmd.SpacesParser
	}
	p, _ := cmd.ParserFor(t)
	return p
}

// SetupLogging applies LogLevel to the standard logrus logger.
func (c *Config) SetupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("invalid log level %s, defaulting to info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
