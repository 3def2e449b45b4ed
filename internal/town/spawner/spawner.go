// Package spawner loads catalog models and places them in the town.
package spawner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/engine/anim"
	"github.com/Faultbox/townview/internal/engine/loader"
	"github.com/Faultbox/townview/internal/engine/scene"
	"github.com/Faultbox/townview/internal/town/animation"
	"github.com/Faultbox/townview/internal/town/catalog"
)

// Loader starts an asynchronous model load. Callbacks run on the frame thread.
type Loader interface {
	Load(path string, onSuccess func(*loader.Result), onError func(error))
}

// Resolver looks up catalog entries.
type Resolver interface {
	Resolve(name string) (catalog.Entry, error)
}

// Scene receives spawned models.
type Scene interface {
	Add(n *scene.Node)
}

// Registrar receives animation players.
type Registrar interface {
	Register(p animation.Player)
}

// LoadError reports a model that could not be read or decoded.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Spawner turns model names into placed, animated scene nodes.
type Spawner struct {
	catalog   Resolver
	loader    Loader
	scene     Scene
	scheduler Registrar
	log       *zap.Logger

	pending int
}

// New creates a spawner.
func New(cat Resolver, l Loader, s Scene, sched Registrar, log *zap.Logger) *Spawner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Spawner{catalog: cat, loader: l, scene: s, scheduler: sched, log: log}
}

// Spawn starts loading the named model and returns a handle to the
// outcome. Unknown names fail the task at once without touching the scene.
// Must be called from the frame thread.
func (s *Spawner) Spawn(name string) *Task {
	task := newTask(name)

	entry, err := s.catalog.Resolve(name)
	if err != nil {
		s.log.Error("cannot spawn model", zap.String("model", name), zap.Error(err))
		task.fail(err)
		return task
	}

	s.pending++
	s.log.Debug("spawning model", zap.String("model", name), zap.String("path", entry.Path))

	s.loader.Load(entry.Path,
		func(res *loader.Result) {
			s.pending--
			s.place(task, entry, res)
		},
		func(err error) {
			s.pending--
			lerr := &LoadError{Name: name, Path: entry.Path, Err: err}
			s.log.Error("model load failed", zap.String("model", name), zap.Error(lerr))
			task.fail(lerr)
		},
	)
	return task
}

// place adds the model and its player in one step so neither is visible
// without the other.
func (s *Spawner) place(task *Task, entry catalog.Entry, res *loader.Result) {
	node := res.Scene
	node.Position = entry.Placement

	var mixer *anim.Mixer
	if len(res.Animations) > 0 {
		mixer = anim.NewMixer(node)
		mixer.PlayAll(res.Animations)
	}

	s.scene.Add(node)
	if mixer != nil {
		s.scheduler.Register(mixer)
	}

	s.log.Info("model placed",
		zap.String("model", entry.Name),
		zap.Float32s("position", entry.Placement[:]),
		zap.Int("clips", len(res.Animations)))
	task.settle(node, mixer)
}

// Pending returns the number of loads in flight.
func (s *Spawner) Pending() int {
	return s.pending
}
