package core

import (
	"fmt"
	"time"
)

const (
	// MinRefreshPeriod is the shortest accepted limit refresh period.
	MinRefreshPeriod = time.Nanosecond

	DefaultTimeoutDuration    = 5 * time.Second
	DefaultLimitRefreshPeriod = 500 * time.Nanosecond
	DefaultLimitForPeriod     = 50
)

// Config holds the base rate limiter parameters shared by every limiter
// implementation: how long a caller may wait for a permit and how many
// permits are released per refresh period.
//
// A Config is immutable once returned by NewConfig and is safe for
// concurrent use.
type Config struct {
	timeoutDuration           time.Duration
	limitRefreshPeriod        time.Duration
	limitForPeriod            int
	drainPermissionsOnResult  DrainPredicate
	writableStackTraceEnabled bool
}

// NewConfig creates a Config from the defaults overridden by opts.
// Options are applied in order; the first invalid one aborts construction.
//
// Example:
//
//	cfg, err := core.NewConfig(
//	    core.WithLimitRefreshPeriod(time.Second),
//	    core.WithLimitForPeriod(10),
//	)
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		timeoutDuration:           DefaultTimeoutDuration,
		limitRefreshPeriod:        DefaultLimitRefreshPeriod,
		limitForPeriod:            DefaultLimitForPeriod,
		drainPermissionsOnResult:  NeverDrain,
		writableStackTraceEnabled: true,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return c, nil
}

// TimeoutDuration returns the maximum time a caller may wait for a permit.
func (c *Config) TimeoutDuration() time.Duration {
	return c.timeoutDuration
}

// LimitRefreshPeriod returns the period over which LimitForPeriod permits are released.
func (c *Config) LimitRefreshPeriod() time.Duration {
	return c.limitRefreshPeriod
}

// LimitForPeriod returns the number of permits released per refresh period.
func (c *Config) LimitForPeriod() int {
	return c.limitForPeriod
}

// DrainPermissionsOnResult returns the configured drain predicate.
func (c *Config) DrainPermissionsOnResult() DrainPredicate {
	return c.drainPermissionsOnResult
}

// ShouldDrain evaluates the drain predicate for the given outcome.
func (c *Config) ShouldDrain(o Outcome) bool {
	return c.drainPermissionsOnResult(o)
}

// WritableStackTraceEnabled reports whether timeout failures should carry a stack trace.
func (c *Config) WritableStackTraceEnabled() bool {
	return c.writableStackTraceEnabled
}

func (c *Config) String() string {
	return fmt.Sprintf("RateLimiterConfig{timeoutDuration=%s, limitRefreshPeriod=%s, limitForPeriod=%d, writableStackTraceEnabled=%t}",
		c.timeoutDuration, c.limitRefreshPeriod, c.limitForPeriod, c.writableStackTraceEnabled)
}

// CheckLimitRefreshPeriod validates a limit refresh period.
func CheckLimitRefreshPeriod(period time.Duration) error {
	if period < MinRefreshPeriod {
		return fmt.Errorf("%w: got %s", ErrRefreshPeriodTooShort, period)
	}
	return nil
}

// CheckLimitForPeriod validates a limit for period.
func CheckLimitForPeriod(limit int) error {
	if limit < 1 {
		return fmt.Errorf("%w: got %d", ErrLimitForPeriodTooSmall, limit)
	}
	return nil
}
