package refill

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimit returns the refill rate as permits per second.
func (c *Config) RateLimit() rate.Limit {
	return rate.Limit(float64(time.Second) / float64(c.nanosPerPermit))
}

// Burst returns the permit capacity, the burst size of a token bucket.
func (c *Config) Burst() int {
	return c.permitCapacity
}

// NewLimiter returns a token bucket that refills at RateLimit up to Burst and
// holds InitialPermits at now, clamped to [0, Burst].
func (c *Config) NewLimiter(now time.Time) *rate.Limiter {
	l := rate.NewLimiter(c.RateLimit(), c.Burst())
	spent := c.permitCapacity - c.initialPermits
	if spent > c.permitCapacity {
		spent = c.permitCapacity
	}
	if spent > 0 {
		l.AllowN(now, spent)
	}
	return l
}
