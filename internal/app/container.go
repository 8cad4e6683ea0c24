package app

import (
	"context"
	"fmt"

	"github.com/kapu/pokedex-randomiser-go/internal/config"
	"github.com/kapu/pokedex-randomiser-go/internal/service/pokeapi"
	"github.com/kapu/pokedex-randomiser-go/internal/web"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing runtime components like Server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	PokeAPI *pokeapi.Client
}

// NewServer instantiates the web front end over the pre-built client.
func (c *Container) NewServer() (*web.Server, error) {
	if c == nil || c.PokeAPI == nil {
		return nil, fmt.Errorf("server dependencies not initialized")
	}
	return web.NewServer(web.Config{
		Addr:           c.Config.Server.Addr,
		RosterCapacity: c.Config.Session.RosterCapacity,
		MaxSpeciesID:   c.Config.Session.MaxSpeciesID,
		FlavorLanguage: c.Config.Session.FlavorLanguage,
	}, c.PokeAPI, c.Logger)
}

// Build validates cfg and assembles the services the server depends on.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout, logger.Named("pokeapi"))
	logger.Info("PokeAPI client configured",
		zap.String("base_url", cfg.PokeAPI.BaseURL),
		zap.Duration("timeout", cfg.PokeAPI.Timeout),
	)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		PokeAPI: client,
	}, nil
}
