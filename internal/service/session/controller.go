package session

import (
	"context"
	"sync"

	"github.com/kapu/pokedex-randomiser-go/internal/constants"
	"github.com/kapu/pokedex-randomiser-go/internal/domain"
	"github.com/kapu/pokedex-randomiser-go/internal/util"
	"github.com/kapu/pokedex-randomiser-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Fetcher is the remote data source. *pokeapi.Client satisfies it.
type Fetcher interface {
	FetchSpecies(ctx context.Context, key string) (*domain.Species, error)
	FetchDetails(ctx context.Context, key string) (*domain.Pokemon, error)
}

// ChangeFunc receives a snapshot after every state mutation. Snapshots may
// arrive out of order when lookups overlap; compare Version to discard stale ones.
type ChangeFunc func(state domain.SessionState)

// Outcome is the committed result of a successful lookup.
type Outcome struct {
	Species *domain.Species
	Details *domain.Pokemon
}

// Controller owns one lookup session: the displayed record, its load status
// and the roster of randomly discovered entries. Starting a lookup cancels
// the one before it, and only the most recent lookup may commit state.
type Controller struct {
	fetcher  Fetcher
	logger   *zap.Logger
	intN     util.IntNFunc
	maxID    int
	onChange ChangeFunc

	mu         sync.Mutex
	state      domain.SessionState
	roster     *domain.Roster
	generation uint64
	cancel     context.CancelFunc
}

func NewController(fetcher Fetcher, logger *zap.Logger, opts ...Option) *Controller {
	o := options{
		rosterCapacity: constants.RosterConfig.Capacity,
		maxSpeciesID:   constants.RosterConfig.MaxSpeciesID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		fetcher:  fetcher,
		logger:   logger,
		intN:     o.intN,
		maxID:    o.maxSpeciesID,
		onChange: o.onChange,
		state: domain.SessionState{
			Status: domain.LoadStatusIdle,
		},
		roster: domain.NewRoster(o.rosterCapacity),
	}
}

// Lookup fetches the species and detail records for key concurrently and
// commits them as a pair. It returns (nil, nil) when the lookup was superseded
// or cancelled, and (nil, err) when it failed; in the failure case the session
// shows the error and no record.
func (c *Controller) Lookup(ctx context.Context, key string) (*Outcome, error) {
	normalized := util.Normalize(key)
	if normalized == "" {
		return nil, errors.NewValidationError("enter a name or ID", "key", key)
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	lookupCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	gen := c.generation

	c.state.Status = domain.LoadStatusLoading
	c.state.Key = normalized
	c.state.Error = ""
	c.state.Species = nil
	c.state.Details = nil
	loading := c.commitLocked()
	c.mu.Unlock()
	c.notify(loading)

	c.logger.Debug("Lookup started",
		zap.String("key", normalized),
		zap.Bool("by_id", util.IsNumericKey(normalized)),
		zap.Uint64("generation", gen),
	)

	species, details, err := c.fetchPair(lookupCtx, normalized)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		cancel()
		c.logger.Debug("Lookup superseded, discarding result",
			zap.String("key", normalized),
			zap.Uint64("generation", gen),
		)
		return nil, nil
	}
	c.cancel = nil
	cancel()

	if err != nil {
		if errors.IsCancelled(err) {
			c.mu.Unlock()
			c.logger.Debug("Lookup cancelled", zap.String("key", normalized))
			return nil, nil
		}

		c.state.Status = domain.LoadStatusError
		c.state.Error = errors.UserMessage(err)
		failed := c.commitLocked()
		c.mu.Unlock()
		c.notify(failed)

		c.logger.Info("Lookup failed",
			zap.String("key", normalized),
			zap.Int("status_code", errors.StatusCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	c.state.Status = domain.LoadStatusSuccess
	c.state.Species = species
	c.state.Details = details
	done := c.commitLocked()
	c.mu.Unlock()
	c.notify(done)

	c.logger.Info("Lookup succeeded",
		zap.String("key", normalized),
		zap.Int("id", species.ID),
		zap.String("name", species.Name),
	)
	return &Outcome{Species: species, Details: details}, nil
}

// TriggerRandomLookup looks up a uniformly drawn dex ID and, on success,
// adds the result to the roster.
func (c *Controller) TriggerRandomLookup(ctx context.Context) (*Outcome, error) {
	id := c.RandomID()

	outcome, err := c.Lookup(ctx, util.KeyFromID(id))
	if err != nil || outcome == nil {
		return outcome, err
	}

	entry := domain.NewRosterEntry(outcome.Species, outcome.Details)

	c.mu.Lock()
	moved := c.roster.Contains(entry.ID)
	c.roster.Add(entry)
	capacity := c.roster.Capacity()
	snapshot := c.commitLocked()
	c.mu.Unlock()
	c.notify(snapshot)

	c.logger.Debug("Roster updated",
		zap.Int("id", entry.ID),
		zap.Bool("moved", moved),
		zap.Int("size", len(snapshot.Roster)),
		zap.Int("capacity", capacity),
	)
	return outcome, nil
}

// SelectRosterEntry re-displays entry. The roster itself is not modified.
func (c *Controller) SelectRosterEntry(ctx context.Context, entry domain.RosterEntry) (*Outcome, error) {
	return c.Lookup(ctx, util.KeyFromID(entry.ID))
}

// ClearRoster empties the roster without touching the current lookup.
func (c *Controller) ClearRoster() {
	c.mu.Lock()
	c.roster.Clear()
	snapshot := c.commitLocked()
	c.mu.Unlock()
	c.notify(snapshot)
}

// State returns a snapshot of the session.
func (c *Controller) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels any outstanding lookup.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
}

// RandomID draws a dex ID from [1, maxID].
func (c *Controller) RandomID() int {
	return util.RandomInRange(c.intN, 1, c.maxID)
}

// fetchPair runs both requests on a context pool. The first failure cancels
// the sibling request and is the error returned.
func (c *Controller) fetchPair(ctx context.Context, key string) (*domain.Species, *domain.Pokemon, error) {
	var (
		species *domain.Species
		details *domain.Pokemon
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		s, err := c.fetcher.FetchSpecies(ctx, key)
		if err != nil {
			return err
		}
		species = s
		return nil
	})
	p.Go(func(ctx context.Context) error {
		d, err := c.fetcher.FetchDetails(ctx, key)
		if err != nil {
			return err
		}
		details = d
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, nil, err
	}
	if species == nil || details == nil {
		return nil, nil, errors.NewRemoteError(0, map[string]any{"key": key}, nil)
	}
	return species, details, nil
}

func (c *Controller) commitLocked() domain.SessionState {
	c.state.Version++
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() domain.SessionState {
	snapshot := c.state
	snapshot.Roster = c.roster.Entries()
	return snapshot
}

func (c *Controller) notify(state domain.SessionState) {
	if c.onChange != nil {
		c.onChange(state)
	}
}
