package session

import "github.com/kapu/pokedex-randomiser-go/internal/util"

type options struct {
	rosterCapacity int
	maxSpeciesID   int
	intN           util.IntNFunc
	onChange       ChangeFunc
}

// Option configures a Controller.
type Option func(*options)

// WithRosterCapacity overrides the default of six roster slots.
func WithRosterCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.rosterCapacity = n
		}
	}
}

// WithMaxSpeciesID sets the upper bound for random draws.
func WithMaxSpeciesID(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSpeciesID = n
		}
	}
}

// WithRandom replaces the random source. intN must return a value in [0, n).
func WithRandom(intN util.IntNFunc) Option {
	return func(o *options) {
		o.intN = intN
	}
}

// WithOnChange registers fn to receive a snapshot after every state change.
func WithOnChange(fn ChangeFunc) Option {
	return func(o *options) {
		o.onChange = fn
	}
}
