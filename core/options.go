package core

import "time"

// Option is a functional option for configuring a Config.
type Option func(*Config) error

// WithTimeoutDuration sets how long a caller may wait for a permit.
// Zero means callers never wait.
func WithTimeoutDuration(d time.Duration) Option {
	return func(c *Config) error {
		c.timeoutDuration = d
		return nil
	}
}

// WithLimitRefreshPeriod sets the refresh period. It must be at least one nanosecond.
func WithLimitRefreshPeriod(period time.Duration) Option {
	return func(c *Config) error {
		if err := CheckLimitRefreshPeriod(period); err != nil {
			return err
		}
		c.limitRefreshPeriod = period
		return nil
	}
}

// WithLimitForPeriod sets the permits released per refresh period. It must be at least 1.
func WithLimitForPeriod(limit int) Option {
	return func(c *Config) error {
		if err := CheckLimitForPeriod(limit); err != nil {
			return err
		}
		c.limitForPeriod = limit
		return nil
	}
}

// WithDrainPermissionsOnResult sets the drain predicate.
// A nil predicate restores NeverDrain.
func WithDrainPermissionsOnResult(fn DrainPredicate) Option {
	return func(c *Config) error {
		if fn == nil {
			fn = NeverDrain
		}
		c.drainPermissionsOnResult = fn
		return nil
	}
}

// WithWritableStackTraceEnabled toggles stack traces on timeout failures.
func WithWritableStackTraceEnabled(enabled bool) Option {
	return func(c *Config) error {
		c.writableStackTraceEnabled = enabled
		return nil
	}
}
