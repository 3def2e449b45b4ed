package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBar struct {
	values   []float32
	finished int
}

func (b *fakeBar) SetProgress(r float32) { b.values = append(b.values, r) }
func (b *fakeBar) Finish()               { b.finished++ }

type fakeVeil struct {
	alpha   float32
	history []float32
}

func (v *fakeVeil) Alpha() float32 { return v.alpha }
func (v *fakeVeil) SetAlpha(a float32) {
	v.alpha = a
	v.history = append(v.history, a)
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTracker() (*Tracker, *fakeBar, *fakeVeil) {
	bar := &fakeBar{}
	veil := &fakeVeil{alpha: 1}
	return NewTracker(bar, veil, DefaultOptions(), nil), bar, veil
}

func TestRatioMonotonic(t *testing.T) {
	tr, bar, _ := newTracker()
	tr.Start(3)

	// total grows while textures are discovered
	tr.Progress("Tileset.glb", 1, 1)
	tr.Progress("grass.png", 1, 3)
	tr.Progress("stone.png", 2, 3)
	tr.Progress("wood.png", 3, 3)

	for i := 1; i < len(bar.values); i++ {
		assert.GreaterOrEqual(t, bar.values[i], bar.values[i-1], "ratio decreased at step %d", i)
	}
	assert.Equal(t, float32(1), tr.Ratio())
}

func TestRatioExactlyOneAtEnd(t *testing.T) {
	tr, _, _ := newTracker()
	tr.Start(7)
	for i := 1; i <= 7; i++ {
		tr.Progress("item", i, 7)
		assert.LessOrEqual(t, tr.Ratio(), float32(1))
	}
	assert.Equal(t, float32(1), tr.Ratio())
}

func TestEmptyBatchCompletesImmediately(t *testing.T) {
	tr, bar, veil := newTracker()
	tr.Start(0)
	assert.Equal(t, float32(1), tr.Ratio())

	tr.Update(epoch)
	assert.Equal(t, StateSettling, tr.State())

	tr.Update(epoch.Add(500 * time.Millisecond))
	assert.Equal(t, StateFading, tr.State())
	assert.Equal(t, 1, bar.finished)
	assert.Equal(t, float32(1), veil.alpha)
}

func TestFadeWaitsForDelay(t *testing.T) {
	tr, bar, veil := newTracker()
	tr.Start(1)
	tr.Progress("a", 1, 1)
	tr.Complete(epoch)

	tr.Update(epoch.Add(100 * time.Millisecond))
	assert.Equal(t, StateSettling, tr.State())
	assert.Zero(t, bar.finished)
	assert.Empty(t, veil.history)
}

func TestFadeReachesZeroAndNeverIncreases(t *testing.T) {
	tr, _, veil := newTracker()
	tr.Start(1)
	tr.Progress("a", 1, 1)
	tr.Complete(epoch)

	// 60 FPS for 4 seconds
	frame := time.Second / 60
	for now := epoch; now.Before(epoch.Add(4 * time.Second)); now = now.Add(frame) {
		tr.Update(now)
	}

	require.NotEmpty(t, veil.history)
	for i, a := range veil.history {
		assert.GreaterOrEqual(t, a, float32(0), "negative alpha at frame %d", i)
		if i > 0 {
			assert.LessOrEqual(t, a, veil.history[i-1], "alpha increased at frame %d", i)
		}
	}
	assert.Equal(t, float32(0), veil.alpha)
	assert.True(t, tr.Done())
}

func TestFadeFinishesWithinDuration(t *testing.T) {
	tr, _, veil := newTracker()
	tr.Start(1)
	tr.Complete(epoch)

	start := epoch.Add(500 * time.Millisecond)
	tr.Update(start)
	tr.Update(start.Add(1500 * time.Millisecond))
	assert.InDelta(t, 0.5, veil.alpha, 1e-4)

	tr.Update(start.Add(3*time.Second + 16*time.Millisecond))
	assert.Equal(t, float32(0), veil.alpha)
	assert.True(t, tr.Done())
}

func TestProgressIgnoredOutsideBatch(t *testing.T) {
	tr, bar, _ := newTracker()
	tr.Progress("stray", 1, 2)
	assert.Empty(t, bar.values)
	assert.Equal(t, StateIdle, tr.State())
}

func TestFadeFromPartialAlpha(t *testing.T) {
	f := NewFade(0.6, epoch, 3*time.Second)
	assert.Equal(t, float32(0.6), f.Alpha(epoch))
	assert.InDelta(t, 0.3, f.Alpha(epoch.Add(1500*time.Millisecond)), 1e-5)
	assert.True(t, f.Done(epoch.Add(3*time.Second)))
	assert.Equal(t, float32(0), f.Alpha(epoch.Add(time.Hour)))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "fading", StateFading.String())
	assert.Equal(t, "unknown", State(99).String())
}
