package refill

import (
	"fmt"
	"time"

	"github.com/yourusername/refillfence/core"
)

// Option is a functional option applied to a Builder.
type Option func(*Builder) error

// New builds a Config from the defaults overridden by opts.
//
// Example:
//
//	cfg, err := refill.New(
//	    refill.WithLimitRefreshPeriod(time.Second),
//	    refill.WithLimitForPeriod(100),
//	    refill.WithPermitCapacity(200), // allow bursts of 200
//	)
func New(opts ...Option) (*Config, error) {
	b := NewBuilder()
	if err := b.Apply(opts...); err != nil {
		return nil, err
	}
	return b.Build()
}

// From builds a Config using prototype as the starting point.
// See NewBuilderFrom for what is carried over.
func From(prototype *Config, opts ...Option) (*Config, error) {
	if prototype == nil {
		return nil, ErrNilPrototype
	}
	b := NewBuilderFrom(prototype)
	if err := b.Apply(opts...); err != nil {
		return nil, err
	}
	return b.Build()
}

// Defaults returns the default configuration: 10ns per permit, 50 permits capacity.
func Defaults() *Config {
	cfg, err := NewBuilder().Build()
	if err != nil {
		panic(fmt.Sprintf("refill: default configuration is invalid: %v", err))
	}
	return cfg
}

// Apply applies opts in order, stopping at the first error.
func (b *Builder) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return nil
}

// WithTimeoutDuration sets how long a caller may wait for a permit.
func WithTimeoutDuration(d time.Duration) Option {
	return func(b *Builder) error {
		return b.SetTimeoutDuration(d)
	}
}

// WithLimitRefreshPeriod sets the refresh period (at least 1ns).
func WithLimitRefreshPeriod(period time.Duration) Option {
	return func(b *Builder) error {
		return b.SetLimitRefreshPeriod(period)
	}
}

// WithLimitForPeriod sets the permits released per refresh period (at least 1).
func WithLimitForPeriod(limit int) Option {
	return func(b *Builder) error {
		return b.SetLimitForPeriod(limit)
	}
}

// WithPermitCapacity sets the burst capacity.
func WithPermitCapacity(capacity int) Option {
	return func(b *Builder) error {
		return b.SetPermitCapacity(capacity)
	}
}

// WithInitialPermits sets the permits available at start.
func WithInitialPermits(permits int) Option {
	return func(b *Builder) error {
		return b.SetInitialPermits(permits)
	}
}

// WithDrainPermissionsOnResult sets the drain predicate.
func WithDrainPermissionsOnResult(fn core.DrainPredicate) Option {
	return func(b *Builder) error {
		return b.SetDrainPermissionsOnResult(fn)
	}
}

// WithWritableStackTraceEnabled toggles stack traces on timeout failures.
func WithWritableStackTraceEnabled(enabled bool) Option {
	return func(b *Builder) error {
		return b.SetWritableStackTraceEnabled(enabled)
	}
}
