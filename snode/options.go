package snode

import (
	"math/bits"

	"github.com/wkalt/sparsetree/arena"
)

const defaultDeviceStripes = 8

// Config is the execution context shared by all nodes of one tree. It is
// passed explicitly to every node constructor.
type Config struct {
	regime   arena.Domain
	checked  bool
	stripes  int
	counters *counters
}

// Option is a functional option for a Config.
type Option func(*Config)

// WithRegime sets the execution regime. The default is arena.Host.
func WithRegime(regime arena.Domain) Option {
	return func(c *Config) {
		c.regime = regime
	}
}

// WithChecked enables index, capacity and domain assertions. Violations panic
// with IndexError, CapacityError or DomainError.
func WithChecked(checked bool) Option {
	return func(c *Config) {
		c.checked = checked
	}
}

// WithStripes sets the number of independently locked stripes in each Hashed
// node. The number is rounded up to a power of two. Non-positive values are
// ignored. The default is one stripe in the host regime and eight in the
// device regime.
func WithStripes(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.stripes = 1 << bits.Len(uint(n-1))
		}
	}
}

// NewConfig returns a new Config.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		regime:   arena.Host,
		counters: &counters{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.stripes == 0 {
		c.stripes = 1
		if !c.host() {
			c.stripes = defaultDeviceStripes
		}
	}
	return c
}

// Regime returns the execution regime.
func (c *Config) Regime() arena.Domain {
	return c.regime
}

// Checked reports whether assertions are enabled.
func (c *Config) Checked() bool {
	return c.checked
}

// Stripes returns the number of lock stripes per Hashed node.
func (c *Config) Stripes() int {
	return c.stripes
}

func (c *Config) host() bool {
	return c.regime == arena.Host
}

// checkDomain panics if an allocator serves a different domain than the
// tree's regime. It runs regardless of the checked flag since it only happens
// at construction.
func (c *Config) checkDomain(kind Kind, domain arena.Domain) {
	if domain != c.regime {
		panic(DomainError{Kind: kind, Regime: c.regime, Allocator: domain})
	}
}
