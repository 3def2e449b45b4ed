package anim

import (
	"math"

	"github.com/Faultbox/townview/internal/engine/scene"
)

type binding struct {
	channel *Channel
	node    *scene.Node
}

// Action is the playback state of one clip on one mixer. Actions loop.
type Action struct {
	clip     *Clip
	bindings []binding
	time     float32
	playing  bool

	TimeScale float32
}

// Play starts or resumes the action.
func (a *Action) Play() *Action {
	a.playing = true
	return a
}

// Stop halts the action and rewinds it.
func (a *Action) Stop() {
	a.playing = false
	a.time = 0
}

// Playing reports whether the action advances on Update.
func (a *Action) Playing() bool {
	return a.playing
}

// Time returns the local clip time in seconds.
func (a *Action) Time() float32 {
	return a.time
}

// Clip returns the clip the action plays.
func (a *Action) Clip() *Clip {
	return a.clip
}

func (a *Action) advance(dt float32) {
	a.time += dt * a.TimeScale
	if d := a.clip.Duration; d > 0 {
		a.time = float32(math.Mod(float64(a.time), float64(d)))
		if a.time < 0 {
			a.time += d
		}
	} else {
		a.time = 0
	}
}

func (a *Action) apply() {
	for _, b := range a.bindings {
		v := b.channel.Sample(a.time)
		switch b.channel.Path {
		case PathTranslation:
			b.node.Position = v.Vec3()
		case PathRotation:
			b.node.Rotation = vecToQuat(v)
		case PathScale:
			b.node.Scale = v.Vec3()
		}
	}
}

// Mixer plays clip actions against the nodes of one model.
type Mixer struct {
	root    *scene.Node
	actions []*Action
}

// NewMixer creates a mixer for the subtree rooted at root.
func NewMixer(root *scene.Node) *Mixer {
	return &Mixer{root: root}
}

// Root returns the node the mixer animates.
func (m *Mixer) Root() *scene.Node {
	return m.root
}

// ClipAction returns the action for clip, creating it on first use.
// Channels whose target lies outside the mixer's subtree are skipped.
func (m *Mixer) ClipAction(clip *Clip) *Action {
	for _, a := range m.actions {
		if a.clip == clip {
			return a
		}
	}

	a := &Action{clip: clip, TimeScale: 1}
	for i := range clip.Channels {
		ch := &clip.Channels[i]
		if n := m.resolve(ch); n != nil {
			a.bindings = append(a.bindings, binding{channel: ch, node: n})
		}
	}
	m.actions = append(m.actions, a)
	return a
}

// resolve finds the node a channel drives. Name lookup skips the root
// itself: the root is the placement handle of the model and shares its name
// with the file, which authored nodes often do too.
func (m *Mixer) resolve(ch *Channel) *scene.Node {
	if ch.Target != nil {
		if m.root.Contains(ch.Target) {
			return ch.Target
		}
		return nil
	}
	for _, c := range m.root.Children() {
		if n := c.Find(ch.Node); n != nil {
			return n
		}
	}
	return nil
}

// Actions returns every action created on this mixer.
func (m *Mixer) Actions() []*Action {
	return m.actions
}

// ActiveCount returns the number of playing actions.
func (m *Mixer) ActiveCount() int {
	n := 0
	for _, a := range m.actions {
		if a.playing {
			n++
		}
	}
	return n
}

// Update advances every playing action by dt seconds and writes the
// sampled transforms to the bound nodes.
func (m *Mixer) Update(dt float32) {
	for _, a := range m.actions {
		if !a.playing {
			continue
		}
		a.advance(dt)
		a.apply()
	}
}

// PlayAll creates an action for every clip and starts it looping.
func (m *Mixer) PlayAll(clips []*Clip) {
	for _, c := range clips {
		m.ClipAction(c).Play()
	}
}
