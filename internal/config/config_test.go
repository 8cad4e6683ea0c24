package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"POKEAPI_BASE_URL", "POKEAPI_TIMEOUT_SECONDS", "SERVER_ADDR",
		"ROSTER_CAPACITY", "MAX_SPECIES_ID", "FLAVOR_LANGUAGE",
		"LOG_LEVEL", "LOG_FILE", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.PokeAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.PokeAPI.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 6, cfg.Session.RosterCapacity)
	assert.Equal(t, 1025, cfg.Session.MaxSpeciesID)
	assert.Equal(t, language.English, cfg.Session.FlavorLanguage)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POKEAPI_BASE_URL", "http://localhost:9000/api/v2/")
	t.Setenv("POKEAPI_TIMEOUT_SECONDS", "3")
	t.Setenv("ROSTER_CAPACITY", "4")
	t.Setenv("MAX_SPECIES_ID", "151")
	t.Setenv("FLAVOR_LANGUAGE", "fr")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api/v2", cfg.PokeAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.PokeAPI.Timeout)
	assert.Equal(t, 4, cfg.Session.RosterCapacity)
	assert.Equal(t, 151, cfg.Session.MaxSpeciesID)
	assert.Equal(t, language.French, cfg.Session.FlavorLanguage)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero capacity", key: "ROSTER_CAPACITY", value: "0"},
		{name: "negative max id", key: "MAX_SPECIES_ID", value: "-5"},
		{name: "zero timeout", key: "POKEAPI_TIMEOUT_SECONDS", value: "0"},
		{name: "bad log format", key: "LOG_FORMAT", value: "xml"},
		{name: "bad language", key: "FLAVOR_LANGUAGE", value: "not a tag!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
