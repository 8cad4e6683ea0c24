package pokeapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/pokedex-randomiser-go/internal/constants"
	"github.com/kapu/pokedex-randomiser-go/internal/domain"
	"github.com/kapu/pokedex-randomiser-go/internal/util"
	"github.com/kapu/pokedex-randomiser-go/pkg/errors"
	"go.uber.org/zap"
)

// Client fetches species and detail records from PokeAPI. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = constants.APIConfig.PokeAPIBaseURL
	}
	if timeout <= 0 {
		timeout = constants.APIConfig.PokeAPITimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchSpecies retrieves GET /pokemon-species/{key}/
func (c *Client) FetchSpecies(ctx context.Context, key string) (*domain.Species, error) {
	var raw SpeciesRaw
	if err := c.doRequest(ctx, constants.APIConfig.SpeciesPath, key, &raw); err != nil {
		return nil, err
	}
	return mapSpecies(&raw), nil
}

// FetchDetails retrieves GET /pokemon/{key}/
func (c *Client) FetchDetails(ctx context.Context, key string) (*domain.Pokemon, error) {
	var raw PokemonRaw
	if err := c.doRequest(ctx, constants.APIConfig.DetailsPath, key, &raw); err != nil {
		return nil, err
	}
	return mapPokemon(&raw), nil
}

// URLFor returns the request URL for key under resourcePath.
func (c *Client) URLFor(resourcePath, key string) string {
	return c.baseURL + resourcePath + url.PathEscape(util.Normalize(key)) + "/"
}

func (c *Client) doRequest(ctx context.Context, resourcePath, key string, dest any) error {
	if util.Normalize(key) == "" {
		return errors.NewValidationError("enter a name or ID", "key", key)
	}

	reqURL := c.URLFor(resourcePath, key)

	if err := ctx.Err(); err != nil {
		return errors.NewCancelledError(reqURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.NewNetworkError(reqURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.APIConfig.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			c.logger.Debug("PokeAPI request cancelled", zap.String("url", reqURL))
			return errors.NewCancelledError(reqURL, ctx.Err())
		}
		c.logger.Warn("PokeAPI request failed",
			zap.String("url", reqURL),
			zap.Error(err),
		)
		return errors.NewNetworkError(reqURL, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("PokeAPI response",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return errors.NewNotFoundError(util.Normalize(key), reqURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("PokeAPI error response",
			zap.String("url", reqURL),
			zap.Int("status", resp.StatusCode),
		)
		return errors.NewRemoteError(resp.StatusCode, map[string]any{
			"url":  reqURL,
			"body": util.TruncateString(string(bodyBytes), constants.StringLimits.LoggedBody),
		}, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelledError(reqURL, ctx.Err())
		}
		c.logger.Warn("Failed to read PokeAPI response body",
			zap.String("url", reqURL),
			zap.Error(err),
		)
		return errors.NewNetworkError(reqURL, err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Warn("Failed to decode PokeAPI response",
			zap.String("url", reqURL),
			zap.Error(err),
		)
		return errors.NewRemoteError(resp.StatusCode, map[string]any{
			"url":  reqURL,
			"body": util.TruncateString(string(body), constants.StringLimits.LoggedBody),
		}, err)
	}

	return nil
}
