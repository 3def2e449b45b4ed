package progress

import "time"

// Fade linearly interpolates an opacity from a starting value to 0 over a
// fixed duration. It holds no timer: callers sample it with the current time.
type Fade struct {
	from     float32
	start    time.Time
	duration time.Duration
}

// NewFade starts a fade from opacity from at start.
func NewFade(from float32, start time.Time, duration time.Duration) *Fade {
	if from < 0 {
		from = 0
	}
	return &Fade{from: from, start: start, duration: duration}
}

// Alpha returns the opacity at now. It never increases with time and is
// clamped to exactly 0 once the duration has elapsed.
func (f *Fade) Alpha(now time.Time) float32 {
	if f.duration <= 0 {
		return 0
	}
	elapsed := now.Sub(f.start)
	if elapsed <= 0 {
		return f.from
	}
	t := float32(elapsed.Seconds() / f.duration.Seconds())
	a := f.from + (0-f.from)*t
	if a <= 0 {
		return 0
	}
	return a
}

// Done reports whether the fade has reached 0 at now.
func (f *Fade) Done(now time.Time) bool {
	return f.Alpha(now) <= 0
}
