// Package progress tracks a batch load and drives the loading overlay:
// a progress bar while items arrive, then a timed fade of the veil.
package progress

import (
	"time"

	"go.uber.org/zap"
)

// Bar is the visual progress indicator.
type Bar interface {
	SetProgress(ratio float32)
	Finish()
}

// Veil is the overlay whose opacity fades once loading completes.
type Veil interface {
	Alpha() float32
	SetAlpha(alpha float32)
}

// State is the tracker lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSettling // complete, waiting for the fade to start
	StateFading
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSettling:
		return "settling"
	case StateFading:
		return "fading"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Options controls overlay timing.
type Options struct {
	FadeDuration  time.Duration
	CompleteDelay time.Duration
}

// DefaultOptions returns a three second fade starting half a second after
// the batch completes.
func DefaultOptions() Options {
	return Options{FadeDuration: 3 * time.Second, CompleteDelay: 500 * time.Millisecond}
}

// Tracker observes one batch load. All methods run on the frame thread.
type Tracker struct {
	bar  Bar
	veil Veil
	opts Options
	log  *zap.Logger

	state       State
	ratio       float32
	completeNow bool
	completedAt time.Time
	fade        *Fade
}

// NewTracker creates a tracker driving bar and veil.
func NewTracker(bar Bar, veil Veil, opts Options, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{bar: bar, veil: veil, opts: opts, log: log}
}

// Start begins tracking a batch of total expected items. An empty batch
// is complete at once: the ratio is 1 and the fade arms on the next Update.
func (t *Tracker) Start(total int) {
	t.state = StateLoading
	t.ratio = 0
	t.fade = nil
	t.completeNow = false
	t.bar.SetProgress(0)

	if total <= 0 {
		t.setRatio(1)
		t.completeNow = true
	}
	t.log.Debug("batch started", zap.Int("total", total))
}

// Progress records loaded of total items. The ratio never decreases within
// a batch and is exactly 1 when loaded equals total.
func (t *Tracker) Progress(url string, loaded, total int) {
	if t.state != StateLoading {
		return
	}

	var r float32 = 1
	if total > 0 && loaded < total {
		r = float32(loaded) / float32(total)
		if r < 0 {
			r = 0
		}
	}
	t.setRatio(r)
	t.log.Debug("batch progress",
		zap.String("url", url),
		zap.Int("loaded", loaded),
		zap.Int("total", total),
		zap.Float32("ratio", t.ratio))
}

func (t *Tracker) setRatio(r float32) {
	if r > t.ratio {
		t.ratio = r
	}
	t.bar.SetProgress(t.ratio)
}

// Complete marks the batch finished at now. The fade starts once the
// configured delay has passed.
func (t *Tracker) Complete(now time.Time) {
	if t.state != StateLoading {
		return
	}
	t.setRatio(1)
	t.state = StateSettling
	t.completedAt = now
	t.log.Info("loading complete")
}

// Update advances the overlay to now. Call once per frame.
func (t *Tracker) Update(now time.Time) {
	if t.completeNow {
		t.completeNow = false
		t.Complete(now)
	}

	switch t.state {
	case StateSettling:
		if now.Sub(t.completedAt) < t.opts.CompleteDelay {
			return
		}
		t.bar.Finish()
		t.fade = NewFade(t.veil.Alpha(), now, t.opts.FadeDuration)
		t.state = StateFading
		fallthrough

	case StateFading:
		a := t.fade.Alpha(now)
		t.veil.SetAlpha(a)
		if a <= 0 {
			t.state = StateDone
			t.log.Debug("overlay hidden")
		}
	}
}

// Ratio returns the current progress ratio in [0, 1].
func (t *Tracker) Ratio() float32 {
	return t.ratio
}

// State returns the lifecycle state.
func (t *Tracker) State() State {
	return t.state
}

// Done reports whether the overlay has fully faded.
func (t *Tracker) Done() bool {
	return t.state == StateDone
}
