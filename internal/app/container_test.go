package app

import (
	"context"
	"testing"
	"time"

	"github.com/kapu/pokedex-randomiser-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func validConfig() *config.Config {
	return &config.Config{
		PokeAPI: config.PokeAPIConfig{BaseURL: "http://127.0.0.1:1/api/v2", Timeout: time.Second},
		Server:  config.ServerConfig{Addr: "127.0.0.1:0"},
		Session: config.SessionConfig{RosterCapacity: 6, MaxSpeciesID: 1025, FlavorLanguage: language.English},
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestBuild(t *testing.T) {
	container, err := Build(context.Background(), validConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, container.PokeAPI)

	server, err := container.NewServer()
	require.NoError(t, err)
	assert.NotNil(t, server.Handler())
}

func TestBuildRejectsBadInput(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), validConfig(), nil)
	assert.Error(t, err)

	cfg := validConfig()
	cfg.Session.RosterCapacity = 0
	_, err = Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, validConfig(), zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewServerWithoutBuild(t *testing.T) {
	var c *Container
	_, err := c.NewServer()
	assert.Error(t, err)
}
