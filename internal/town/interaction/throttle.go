package interaction

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle admits at most one call per interval. The first call fires at
// once; calls inside the interval are dropped, with no trailing call.
type Throttle struct {
	limiter *rate.Limiter
	now     func() time.Time
}

// NewThrottle creates a throttle. now defaults to time.Now.
func NewThrottle(interval time.Duration, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle{limiter: rate.NewLimiter(limit, 1), now: now}
}

// Allow reports whether a call may run now.
func (t *Throttle) Allow() bool {
	return t.limiter.AllowN(t.now(), 1)
}
