package anim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/scene"
)

func bladeClip() *Clip {
	return NewClip("Spin", []Channel{{
		Node:   "blades",
		Path:   PathTranslation,
		Times:  []float32{0, 1, 2},
		Values: []mgl32.Vec4{{0, 0, 0, 0}, {2, 0, 0, 0}, {0, 0, 0, 0}},
	}})
}

func TestNewClipDuration(t *testing.T) {
	if d := bladeClip().Duration; d != 2 {
		t.Errorf("Duration = %v, want 2", d)
	}
}

func TestSampleInterpolates(t *testing.T) {
	ch := bladeClip().Channels[0]
	tests := []struct {
		t    float32
		want float32
	}{
		{-1, 0},
		{0, 0},
		{0.5, 1},
		{1, 2},
		{1.5, 1},
		{5, 0},
	}
	for _, tt := range tests {
		if got := ch.Sample(tt.t).X(); !mgl32.FloatEqual(got, tt.want) {
			t.Errorf("Sample(%v).X = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestSampleRotationSlerps(t *testing.T) {
	q90 := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	ch := Channel{
		Path:   PathRotation,
		Times:  []float32{0, 1},
		Values: []mgl32.Vec4{{0, 0, 0, 1}, {q90.V.X(), q90.V.Y(), q90.V.Z(), q90.W}},
	}
	v := ch.Sample(0.5)
	got := mgl32.Quat{W: v.W(), V: v.Vec3()}
	want := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	if !got.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("Sample(0.5) = %v, want %v", got, want)
	}
}

func TestEmptyChannelIsIdentity(t *testing.T) {
	ch := Channel{Path: PathScale}
	if v := ch.Sample(1); !v.Vec3().ApproxEqual(mgl32.Vec3{1, 1, 1}) {
		t.Errorf("empty scale channel = %v", v)
	}
}

func TestMixerLoops(t *testing.T) {
	root := scene.NewGroup("Windmill")
	blades := scene.NewGroup("blades")
	root.Add(blades)

	m := NewMixer(root)
	action := m.ClipAction(bladeClip()).Play()

	m.Update(0.5)
	if !mgl32.FloatEqual(blades.Position.X(), 1) {
		t.Errorf("after 0.5s X = %v, want 1", blades.Position.X())
	}

	m.Update(2) // wraps to 0.5 again
	if !mgl32.FloatEqual(action.Time(), 0.5) {
		t.Errorf("looped time = %v, want 0.5", action.Time())
	}
	if !mgl32.FloatEqual(blades.Position.X(), 1) {
		t.Errorf("after loop X = %v, want 1", blades.Position.X())
	}
}

func TestClipActionIsCached(t *testing.T) {
	m := NewMixer(scene.NewGroup("root"))
	clip := bladeClip()
	if m.ClipAction(clip) != m.ClipAction(clip) {
		t.Error("expected the same action for the same clip")
	}
	if len(m.Actions()) != 1 {
		t.Errorf("expected 1 action, got %d", len(m.Actions()))
	}
}

func TestStoppedActionDoesNotAdvance(t *testing.T) {
	root := scene.NewGroup("root")
	root.Add(scene.NewGroup("blades"))
	m := NewMixer(root)
	a := m.ClipAction(bladeClip())

	m.Update(1)
	if a.Time() != 0 || m.ActiveCount() != 0 {
		t.Errorf("idle action advanced: time=%v active=%d", a.Time(), m.ActiveCount())
	}

	m.PlayAll([]*Clip{a.Clip()})
	if m.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", m.ActiveCount())
	}
	a.Stop()
	if a.Playing() || a.Time() != 0 {
		t.Error("Stop should rewind and pause")
	}
}

func TestMissingNodeSkipped(t *testing.T) {
	m := NewMixer(scene.NewGroup("root"))
	m.ClipAction(bladeClip()).Play()
	m.Update(0.25) // no bound nodes: must not panic
}

func TestTargetBindsByPointer(t *testing.T) {
	// Root and animated child share a name, as file-named exports do.
	root := scene.NewGroup("Windmill")
	child := scene.NewGroup("Windmill")
	root.Add(child)
	root.Position = mgl32.Vec3{14, 0, -5}

	clip := NewClip("Turn", []Channel{{
		Node:   "Windmill",
		Target: child,
		Path:   PathTranslation,
		Times:  []float32{0, 1},
		Values: []mgl32.Vec4{{0, 0, 0, 0}, {10, 0, 0, 0}},
	}})

	m := NewMixer(root)
	m.PlayAll([]*Clip{clip})
	m.Update(0.5)

	if root.Position != (mgl32.Vec3{14, 0, -5}) {
		t.Errorf("root moved to %v", root.Position)
	}
	if !mgl32.FloatEqual(child.Position.X(), 5) {
		t.Errorf("child X = %v, want 5", child.Position.X())
	}
}

func TestNameLookupSkipsRoot(t *testing.T) {
	root := scene.NewGroup("blades")
	root.Position = mgl32.Vec3{3, 0, 0}

	m := NewMixer(root)
	m.ClipAction(bladeClip()).Play()
	m.Update(0.5)

	if root.Position != (mgl32.Vec3{3, 0, 0}) {
		t.Errorf("root moved to %v", root.Position)
	}
}

func TestForeignTargetSkipped(t *testing.T) {
	other := scene.NewGroup("elsewhere")
	clip := NewClip("Stray", []Channel{{
		Target: other,
		Path:   PathTranslation,
		Times:  []float32{0, 1},
		Values: []mgl32.Vec4{{0, 0, 0, 0}, {1, 0, 0, 0}},
	}})

	m := NewMixer(scene.NewGroup("root"))
	m.PlayAll([]*Clip{clip})
	m.Update(0.5)

	if other.Position != (mgl32.Vec3{}) {
		t.Errorf("node outside the subtree moved to %v", other.Position)
	}
}
