// Package refill provides the configuration of a permit-rate based
// ("refill") rate limiter.
//
// A periodic limiter releases LimitForPeriod permits at the start of every
// LimitRefreshPeriod. A refill limiter releases the same number of permits
// over the same period, but one at a time: a permit is restored every
// NanosPerPermit nanoseconds, where
//
//	NanosPerPermit = LimitRefreshPeriod / LimitForPeriod   (integer division)
//
// The bucket holds at most PermitCapacity permits, which is never less than
// LimitForPeriod, and is refilled from empty in NanosPerFullCapacity.
//
// # Quick Start
//
//	cfg, err := refill.New(
//	    refill.WithLimitRefreshPeriod(time.Second),
//	    refill.WithLimitForPeriod(100),  // 10ms per permit
//	    refill.WithPermitCapacity(200),  // bursts of up to 200
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Setters validate eagerly; Build reports combinations that cannot work, such
// as a period shorter in nanoseconds than the limit:
//
//	b := refill.NewBuilder()
//	_ = b.SetLimitRefreshPeriod(time.Nanosecond)
//	_ = b.SetLimitForPeriod(2)
//	_, err := b.Build() // errors.Is(err, refill.ErrZeroNanosPerPermit)
//
// # Precision
//
// The division truncates. A period that is not a multiple of the limit
// loses the remainder, so the effective rate can be marginally slower than
// requested: 1s over 3 permits yields 333333333ns per permit.
//
// # Configuration
//
// Policies can be loaded from YAML:
//
//	defaults:
//	  timeout_duration: 2s
//	  limit_refresh_period: 1s
//	  limit_for_period: 100
//
//	policies:
//	  "api.login":
//	    limit_refresh_period: 1m
//	    limit_for_period: 5
//	    drain_on_failure: true
//	  "api.*":
//	    permit_capacity: 200
//
// Policy keys may be glob patterns with '.' as separator. Unset fields are
// inherited from defaults.
//
// # Concurrency
//
// A Builder belongs to one goroutine. A Config is immutable and may be
// shared freely.
package refill
