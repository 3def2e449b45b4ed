package spawner

import (
	"github.com/Faultbox/townview/internal/engine/anim"
	"github.com/Faultbox/townview/internal/engine/scene"
)

// State is the outcome of a spawn.
type State int

const (
	StatePending State = iota
	StateSettled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSettled:
		return "settled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task tracks one spawn. Its fields are written on the frame thread; other
// goroutines may read them after Done is closed.
type Task struct {
	name  string
	state State
	err   error
	node  *scene.Node
	mixer *anim.Mixer
	done  chan struct{}
}

func newTask(name string) *Task {
	return &Task{name: name, done: make(chan struct{})}
}

// Name returns the requested model name.
func (t *Task) Name() string { return t.name }

// State returns the current outcome.
func (t *Task) State() State { return t.state }

// Err returns the failure, if any.
func (t *Task) Err() error { return t.err }

// Node returns the placed model once settled.
func (t *Task) Node() *scene.Node { return t.node }

// Mixer returns the model's animation mixer, nil when it has no clips.
func (t *Task) Mixer() *anim.Mixer { return t.mixer }

// Done is closed when the task settles or fails.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) settle(node *scene.Node, mixer *anim.Mixer) {
	t.node, t.mixer, t.state = node, mixer, StateSettled
	close(t.done)
}

func (t *Task) fail(err error) {
	t.err, t.state = err, StateFailed
	close(t.done)
}
