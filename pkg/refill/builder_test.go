package refill

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/refillfence/core"
)

const (
	testLimit          = 50
	testPermitCapacity = 60
	testTimeout        = 5 * time.Second
	testRefreshPeriod  = 500 * time.Nanosecond
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.SetTimeoutDuration(testTimeout))
	require.NoError(t, b.SetLimitRefreshPeriod(testRefreshPeriod))
	require.NoError(t, b.SetLimitForPeriod(testLimit))
	return b
}

func TestBuilder_Positive(t *testing.T) {
	cfg, err := newTestBuilder(t).Build()
	require.NoError(t, err)

	base := cfg.RateLimiterConfig()
	assert.Equal(t, testLimit, base.LimitForPeriod())
	assert.Equal(t, testRefreshPeriod, base.LimitRefreshPeriod())
	assert.Equal(t, testTimeout, base.TimeoutDuration())

	assert.Equal(t, testLimit, cfg.PermitCapacity())
	assert.Equal(t, int64(10), cfg.NanosPerPermit())
	assert.Equal(t, int64(500), cfg.NanosPerFullCapacity())
	assert.Equal(t, testLimit, cfg.InitialPermits())
}

func TestBuilder_CapacityAboveLimit(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.SetPermitCapacity(testPermitCapacity))

	cfg, err := b.Build()
	require.NoError(t, err)

	// 500ns / 50 * 60
	adjustedPeriod := 600 * time.Nanosecond

	base := cfg.RateLimiterConfig()
	assert.Equal(t, testPermitCapacity, base.LimitForPeriod())
	assert.Equal(t, adjustedPeriod, base.LimitRefreshPeriod())
	assert.Equal(t, adjustedPeriod, cfg.LimitRefreshPeriod())
	assert.Equal(t, testTimeout, base.TimeoutDuration())

	assert.Equal(t, testPermitCapacity, cfg.PermitCapacity())
	assert.Equal(t, int64(600), cfg.NanosPerFullCapacity())
	assert.Equal(t, testLimit, cfg.InitialPermits(), "initial permits default to the limit, not the capacity")
}

func TestBuilder_CapacityRaisedToLimit(t *testing.T) {
	for _, capacity := range []int{-5, 0, 1, testLimit - 1, testLimit} {
		b := newTestBuilder(t)
		require.NoError(t, b.SetPermitCapacity(capacity))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, testLimit, cfg.PermitCapacity(), "capacity %d", capacity)
	}
}

func TestBuilder_ExplicitInitialPermits(t *testing.T) {
	for _, permits := range []int{0, 1, testLimit, 1000} {
		b := newTestBuilder(t)
		require.NoError(t, b.SetPermitCapacity(testPermitCapacity))
		require.NoError(t, b.SetInitialPermits(permits))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, permits, cfg.InitialPermits())
	}
}

func TestBuilder_NanosPerPermitTruncates(t *testing.T) {
	tests := []struct {
		period time.Duration
		limit  int
		want   int64
	}{
		{period: 500 * time.Nanosecond, limit: 50, want: 10},
		{period: time.Second, limit: 3, want: 333333333},
		{period: 7 * time.Nanosecond, limit: 2, want: 3},
		{period: time.Nanosecond, limit: 1, want: 1},
		{period: time.Minute, limit: 1, want: int64(time.Minute)},
	}

	for _, tt := range tests {
		b := NewBuilder()
		require.NoError(t, b.SetLimitRefreshPeriod(tt.period))
		require.NoError(t, b.SetLimitForPeriod(tt.limit))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, tt.want, cfg.NanosPerPermit(), "%s / %d", tt.period, tt.limit)
		assert.Equal(t, tt.want*int64(cfg.PermitCapacity()), cfg.NanosPerFullCapacity())
	}
}

func TestBuilder_RefreshPeriodTooShort(t *testing.T) {
	for _, period := range []time.Duration{0, -time.Nanosecond, -time.Hour} {
		err := NewBuilder().SetLimitRefreshPeriod(period)
		require.ErrorIs(t, err, core.ErrRefreshPeriodTooShort)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	}
}

func TestBuilder_LimitIsLessThanOne(t *testing.T) {
	b := NewBuilder()
	err := b.SetLimitForPeriod(0)
	require.ErrorIs(t, err, core.ErrLimitForPeriodTooSmall)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	// the rejected value is not stored
	cfg, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultLimitForPeriod, cfg.PermitCapacity())
}

func TestBuilder_ZeroNanosPerPermit(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetLimitRefreshPeriod(time.Nanosecond))
	require.NoError(t, b.SetLimitForPeriod(2))

	cfg, err := b.Build()
	require.ErrorIs(t, err, ErrZeroNanosPerPermit)
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.False(t, errors.Is(err, core.ErrInvalidArgument))
	assert.Nil(t, cfg)
}

func TestBuilder_FullCapacityOverflow(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetLimitRefreshPeriod(time.Duration(math.MaxInt64)))
	require.NoError(t, b.SetLimitForPeriod(1))
	require.NoError(t, b.SetPermitCapacity(2))

	_, err := b.Build()
	require.ErrorIs(t, err, ErrFullCapacityOverflow)
	assert.ErrorIs(t, err, core.ErrInvalidState)
}

func TestBuilder_BuildIsIdempotent(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.SetPermitCapacity(10))

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.PermitCapacity(), second.PermitCapacity())
	assert.Equal(t, first.NanosPerPermit(), second.NanosPerPermit())
	assert.Equal(t, first.NanosPerFullCapacity(), second.NanosPerFullCapacity())
	assert.Equal(t, first.InitialPermits(), second.InitialPermits())
	assert.Equal(t, first.LimitRefreshPeriod(), second.LimitRefreshPeriod())
}

func TestBuilder_DrainPredicateCarried(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDrainPermissionsOnResult(core.DrainOnFailure))

	cfg, err := b.Build()
	require.NoError(t, err)
	failure := core.Outcome{Err: errors.New("denied")}
	assert.True(t, cfg.RateLimiterConfig().ShouldDrain(failure))

	require.NoError(t, b.SetDrainPermissionsOnResult(nil))
	cfg, err = b.Build()
	require.NoError(t, err)
	assert.False(t, cfg.RateLimiterConfig().ShouldDrain(failure))
}

func TestBuilderFrom_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		period   time.Duration
		limit    int
		capacity int
	}{
		{name: "defaults", period: testRefreshPeriod, limit: testLimit},
		{name: "burst headroom", period: testRefreshPeriod, limit: testLimit, capacity: 80},
		{name: "uneven period", period: time.Second, limit: 3, capacity: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, b.SetLimitRefreshPeriod(tt.period))
			require.NoError(t, b.SetLimitForPeriod(tt.limit))
			require.NoError(t, b.SetPermitCapacity(tt.capacity))
			require.NoError(t, b.SetTimeoutDuration(time.Second))
			require.NoError(t, b.SetWritableStackTraceEnabled(false))

			original, err := b.Build()
			require.NoError(t, err)

			copied, err := NewBuilderFrom(original).Build()
			require.NoError(t, err)

			assert.Equal(t, original.NanosPerPermit(), copied.NanosPerPermit())
			assert.Equal(t, original.PermitCapacity(), copied.PermitCapacity())
			assert.Equal(t, original.NanosPerFullCapacity(), copied.NanosPerFullCapacity())
			assert.Equal(t, time.Second, copied.TimeoutDuration())
			assert.False(t, copied.RateLimiterConfig().WritableStackTraceEnabled())
		})
	}
}

func TestBuilderFrom_InitialPermitsNotCopied(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.SetInitialPermits(7))
	original, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 7, original.InitialPermits())

	copied, err := NewBuilderFrom(original).Build()
	require.NoError(t, err)

	// the prototype builder has limitForPeriod = 1
	assert.Equal(t, 1, copied.InitialPermits())
}

func TestBuilderFrom_OverrideRate(t *testing.T) {
	original, err := newTestBuilder(t).Build()
	require.NoError(t, err)

	b := NewBuilderFrom(original)
	require.NoError(t, b.SetLimitRefreshPeriod(100*time.Nanosecond))

	cfg, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, int64(100), cfg.NanosPerPermit())
	assert.Equal(t, original.PermitCapacity(), cfg.PermitCapacity())
	assert.Equal(t, int64(100*testLimit), cfg.NanosPerFullCapacity())
}
