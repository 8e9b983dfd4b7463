package refill

import (
	"math"
	"time"

	"github.com/yourusername/refillfence/core"
)

// Builder stages the inputs of a Config. Setters validate eagerly and Build
// derives the refill rate.
//
// A Builder belongs to a single caller and is not safe for concurrent use.
type Builder struct {
	timeoutDuration           time.Duration
	limitRefreshPeriod        time.Duration
	limitForPeriod            int
	permitCapacity            int // 0 means derive from limitForPeriod
	initialPermits            int
	initialPermitsSet         bool
	drainPermissionsOnResult  core.DrainPredicate
	writableStackTraceEnabled bool
}

// NewBuilder returns a Builder holding the default settings:
// 50 permits every 500ns, a 5s timeout and stack traces enabled.
func NewBuilder() *Builder {
	return &Builder{
		timeoutDuration:           core.DefaultTimeoutDuration,
		limitRefreshPeriod:        core.DefaultLimitRefreshPeriod,
		limitForPeriod:            core.DefaultLimitForPeriod,
		drainPermissionsOnResult:  core.NeverDrain,
		writableStackTraceEnabled: true,
	}
}

// NewBuilderFrom returns a Builder seeded from prototype.
//
// The rate is carried over as a single-permit period (limitRefreshPeriod =
// NanosPerPermit, limitForPeriod = 1) so rebuilding reproduces NanosPerPermit
// exactly. Timeout, capacity, drain predicate and stack trace flag are
// copied; initial permits are not and default to one permit again.
func NewBuilderFrom(prototype *Config) *Builder {
	base := prototype.RateLimiterConfig()
	return &Builder{
		timeoutDuration:           base.TimeoutDuration(),
		limitRefreshPeriod:        time.Duration(prototype.nanosPerPermit),
		limitForPeriod:            1,
		permitCapacity:            prototype.permitCapacity,
		drainPermissionsOnResult:  base.DrainPermissionsOnResult(),
		writableStackTraceEnabled: base.WritableStackTraceEnabled(),
	}
}

// SetTimeoutDuration sets how long a caller may wait for a permit.
func (b *Builder) SetTimeoutDuration(d time.Duration) error {
	b.timeoutDuration = d
	return nil
}

// SetLimitRefreshPeriod sets the period after which up to limitForPeriod
// permits have been released. It must be at least one nanosecond.
func (b *Builder) SetLimitRefreshPeriod(period time.Duration) error {
	if err := core.CheckLimitRefreshPeriod(period); err != nil {
		return err
	}
	b.limitRefreshPeriod = period
	return nil
}

// SetLimitForPeriod sets the permits released during one refresh period.
// It must be at least 1.
func (b *Builder) SetLimitForPeriod(limit int) error {
	if err := core.CheckLimitForPeriod(limit); err != nil {
		return err
	}
	b.limitForPeriod = limit
	return nil
}

// SetPermitCapacity sets the maximum permits available at once.
// Values below limitForPeriod are raised to it by Build.
func (b *Builder) SetPermitCapacity(capacity int) error {
	b.permitCapacity = capacity
	return nil
}

// SetInitialPermits sets the permits available at start.
// If never called, Build uses limitForPeriod.
func (b *Builder) SetInitialPermits(permits int) error {
	b.initialPermits = permits
	b.initialPermitsSet = true
	return nil
}

// SetDrainPermissionsOnResult sets the drain predicate. Nil restores core.NeverDrain.
func (b *Builder) SetDrainPermissionsOnResult(fn core.DrainPredicate) error {
	if fn == nil {
		fn = core.NeverDrain
	}
	b.drainPermissionsOnResult = fn
	return nil
}

// SetWritableStackTraceEnabled toggles stack traces on timeout failures.
func (b *Builder) SetWritableStackTraceEnabled(enabled bool) error {
	b.writableStackTraceEnabled = enabled
	return nil
}

// Build derives the refill parameters and returns the Config.
// The Builder is left untouched, so Build can be called repeatedly.
func (b *Builder) Build() (*Config, error) {
	capacity := b.permitCapacity
	if capacity < b.limitForPeriod {
		capacity = b.limitForPeriod
	}

	initialPermits := b.initialPermits
	if !b.initialPermitsSet {
		initialPermits = b.limitForPeriod
	}

	perPermit := nanosPerPermit(b.limitRefreshPeriod, b.limitForPeriod)
	if perPermit <= 0 {
		return nil, ErrZeroNanosPerPermit
	}

	if perPermit > math.MaxInt64/int64(capacity) {
		return nil, ErrFullCapacityOverflow
	}
	perFullCapacity := perPermit * int64(capacity)

	return newConfig(b.timeoutDuration, capacity, perPermit, perFullCapacity,
		initialPermits, b.writableStackTraceEnabled, b.drainPermissionsOnResult)
}

// nanosPerPermit truncates: remainder nanoseconds of the period are dropped,
// so the effective rate may be slightly slower than requested.
func nanosPerPermit(period time.Duration, limit int) int64 {
	return period.Nanoseconds() / int64(limit)
}
