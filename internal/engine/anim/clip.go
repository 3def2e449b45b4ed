// Package anim samples keyframed node animation and drives it through a
// per-model mixer.
package anim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/townview/internal/engine/scene"
)

// Path identifies which node property a channel animates.
type Path int

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
)

func (p Path) String() string {
	switch p {
	case PathTranslation:
		return "translation"
	case PathRotation:
		return "rotation"
	case PathScale:
		return "scale"
	default:
		return "unknown"
	}
}

// Channel is one animated property of one node. Times are in seconds and
// sorted ascending. Values hold xyz for translation and scale, xyzw for rotation.
//
// Target is the decoded node the channel drives. Channels built by hand may
// leave it nil and name a descendant of the mixer root in Node instead.
type Channel struct {
	Node   string
	Target *scene.Node
	Path   Path
	Times  []float32
	Values []mgl32.Vec4
}

// Clip is a named set of channels.
type Clip struct {
	Name     string
	Duration float32
	Channels []Channel
}

// NewClip builds a clip and derives its duration from the last keyframe.
func NewClip(name string, channels []Channel) *Clip {
	c := &Clip{Name: name, Channels: channels}
	for _, ch := range channels {
		if n := len(ch.Times); n > 0 && ch.Times[n-1] > c.Duration {
			c.Duration = ch.Times[n-1]
		}
	}
	return c
}

// Sample returns the channel value at time t. Before the first key the first
// value holds; after the last key the last value holds.
func (ch *Channel) Sample(t float32) mgl32.Vec4 {
	n := len(ch.Times)
	if n == 0 || len(ch.Values) < n {
		return identity(ch.Path)
	}
	if n == 1 || t <= ch.Times[0] {
		return ch.Values[0]
	}

	// Find surrounding keyframes
	var prev, next int
	for i := range ch.Times {
		if ch.Times[i] > t {
			next = i
			break
		}
		prev = i
		next = i
	}

	if prev == next {
		return ch.Values[prev]
	}

	t0, t1 := ch.Times[prev], ch.Times[next]
	f := float32(0)
	if t1 != t0 {
		f = (t - t0) / (t1 - t0)
	}

	v0, v1 := ch.Values[prev], ch.Values[next]
	if ch.Path == PathRotation {
		q := mgl32.QuatSlerp(vecToQuat(v0), vecToQuat(v1), f)
		return mgl32.Vec4{q.V.X(), q.V.Y(), q.V.Z(), q.W}
	}
	return v0.Add(v1.Sub(v0).Mul(f))
}

func identity(p Path) mgl32.Vec4 {
	switch p {
	case PathRotation:
		return mgl32.Vec4{0, 0, 0, 1}
	case PathScale:
		return mgl32.Vec4{1, 1, 1, 0}
	default:
		return mgl32.Vec4{}
	}
}

func vecToQuat(v mgl32.Vec4) mgl32.Quat {
	return mgl32.Quat{W: v.W(), V: v.Vec3()}.Normalize()
}
