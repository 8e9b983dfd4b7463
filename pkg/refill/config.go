package refill

import (
	"fmt"
	"time"

	"github.com/yourusername/refillfence/core"
)

// Config is a permit-rate based rate limiter configuration.
//
// Instead of resetting permits once per refresh period, permits are released
// one at a time every NanosPerPermit nanoseconds, up to PermitCapacity.
// NanosPerPermit is the limit refresh period divided by the limit for period.
//
// A Config is immutable and safe for concurrent use.
type Config struct {
	base                 *core.Config
	permitCapacity       int
	nanosPerPermit       int64
	nanosPerFullCapacity int64
	initialPermits       int
}

// newConfig is only called by Builder.Build. The base parameters are rebuilt
// so that the periodic view releases permitCapacity permits every
// nanosPerPermit*permitCapacity nanoseconds, the same rate as the refill view.
func newConfig(timeout time.Duration, permitCapacity int, nanosPerPermit, nanosPerFullCapacity int64,
	initialPermits int, writableStackTraceEnabled bool, drain core.DrainPredicate) (*Config, error) {
	if nanosPerPermit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonPositiveNanosPerPermit, nanosPerPermit)
	}

	base, err := core.NewConfig(
		core.WithTimeoutDuration(timeout),
		core.WithLimitRefreshPeriod(time.Duration(nanosPerPermit*int64(permitCapacity))),
		core.WithLimitForPeriod(permitCapacity),
		core.WithDrainPermissionsOnResult(drain),
		core.WithWritableStackTraceEnabled(writableStackTraceEnabled),
	)
	if err != nil {
		return nil, err
	}

	return &Config{
		base:                 base,
		permitCapacity:       permitCapacity,
		nanosPerPermit:       nanosPerPermit,
		nanosPerFullCapacity: nanosPerFullCapacity,
		initialPermits:       initialPermits,
	}, nil
}

// RateLimiterConfig returns the underlying base parameters.
func (c *Config) RateLimiterConfig() *core.Config {
	return c.base
}

// PermitCapacity returns the maximum number of permits the bucket can hold.
func (c *Config) PermitCapacity() int {
	return c.permitCapacity
}

// InitialPermits returns the permits available when the limiter is created.
// It is not bounded by PermitCapacity.
func (c *Config) InitialPermits() int {
	return c.initialPermits
}

// NanosPerPermit returns the nanoseconds needed to replenish one permit.
func (c *Config) NanosPerPermit() int64 {
	return c.nanosPerPermit
}

// NanosPerFullCapacity returns the nanoseconds needed to refill an empty bucket.
func (c *Config) NanosPerFullCapacity() int64 {
	return c.nanosPerFullCapacity
}

// LimitRefreshPeriod returns the effective refresh period of the base parameters.
func (c *Config) LimitRefreshPeriod() time.Duration {
	return c.base.LimitRefreshPeriod()
}

// TimeoutDuration returns the maximum time a caller may wait for a permit.
func (c *Config) TimeoutDuration() time.Duration {
	return c.base.TimeoutDuration()
}

// String renders the configuration for logs. The format is not stable.
func (c *Config) String() string {
	return fmt.Sprintf("RefillRateLimiterConfig{timeoutDuration=%s, permitCapacity=%d, nanosPerPermission=%d, writableStackTraceEnabled=%t}",
		c.base.TimeoutDuration(), c.permitCapacity, c.nanosPerPermit, c.base.WritableStackTraceEnabled())
}
