package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/pokedex-randomiser-go/internal/constants"
	"golang.org/x/text/language"
)

type Config struct {
	PokeAPI PokeAPIConfig
	Server  ServerConfig
	Session SessionConfig
	Logging LoggingConfig
}

type PokeAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ServerConfig struct {
	Addr string
}

type SessionConfig struct {
	RosterCapacity int
	MaxSpeciesID   int
	FlavorLanguage language.Tag
}

type LoggingConfig struct {
	Level  string
	File   string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	lang, err := language.Parse(getEnv("FLAVOR_LANGUAGE", constants.DefaultFlavorLanguage))
	if err != nil {
		return nil, fmt.Errorf("invalid FLAVOR_LANGUAGE: %w", err)
	}

	cfg := &Config{
		PokeAPI: PokeAPIConfig{
			BaseURL: strings.TrimRight(getEnv("POKEAPI_BASE_URL", constants.APIConfig.PokeAPIBaseURL), "/"),
			Timeout: time.Duration(getEnvInt("POKEAPI_TIMEOUT_SECONDS", int(constants.APIConfig.PokeAPITimeout/time.Second))) * time.Second,
		},
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", constants.ServerConfig.Addr),
		},
		Session: SessionConfig{
			RosterCapacity: getEnvInt("ROSTER_CAPACITY", constants.RosterConfig.Capacity),
			MaxSpeciesID:   getEnvInt("MAX_SPECIES_ID", constants.RosterConfig.MaxSpeciesID),
			FlavorLanguage: lang,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			File:   getEnv("LOG_FILE", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PokeAPI.BaseURL == "" {
		return fmt.Errorf("POKEAPI_BASE_URL is required")
	}
	if c.PokeAPI.Timeout <= 0 {
		return fmt.Errorf("POKEAPI_TIMEOUT_SECONDS must be positive")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.Session.RosterCapacity <= 0 {
		return fmt.Errorf("ROSTER_CAPACITY must be positive")
	}
	if c.Session.MaxSpeciesID <= 0 {
		return fmt.Errorf("MAX_SPECIES_ID must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
