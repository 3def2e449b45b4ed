// Package town wires the viewer together: it owns the scene, the loaders
// and the interaction components, and advances them once per frame.
package town

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/config"
	"github.com/Faultbox/townview/internal/engine/camera"
	"github.com/Faultbox/townview/internal/engine/input"
	"github.com/Faultbox/townview/internal/engine/loader"
	"github.com/Faultbox/townview/internal/engine/scene"
	"github.com/Faultbox/townview/internal/town/animation"
	"github.com/Faultbox/townview/internal/town/catalog"
	"github.com/Faultbox/townview/internal/town/interaction"
	"github.com/Faultbox/townview/internal/town/progress"
	"github.com/Faultbox/townview/internal/town/spawner"
	"github.com/Faultbox/townview/internal/town/tiles"
)

// Overlay is the loading screen driven by the progress tracker.
type Overlay interface {
	progress.Bar
	progress.Veil
}

// Viewport is told about window size changes.
type Viewport interface {
	Resize(width, height int)
}

// Context carries the collaborators a Town is built from. There is no
// package-level state: everything the components share is passed here.
type Context struct {
	Config   *config.Config
	Assets   loader.Reader
	Overlay  Overlay
	Sound    interaction.Sound // nil for silence
	Viewport Viewport          // optional
	Log      *zap.Logger
}

// Town is the running viewer state. All methods run on the frame thread.
type Town struct {
	cfg *config.Config
	log *zap.Logger

	scene     *scene.Scene
	camera    *camera.OrbitCamera
	queue     *loader.Queue
	batch     *loader.Manager
	tileset   *loader.Loader
	models    *loader.Loader
	catalog   *catalog.Catalog
	registry  *tiles.Registry
	scheduler *animation.Scheduler
	tracker   *progress.Tracker
	spawner   *spawner.Spawner
	ctrl      *interaction.Controller
	viewport  Viewport

	width, height int
	now           time.Time

	// pointer gesture
	pressed       bool
	dragging      bool
	downX, downY  int
	dragThreshold float32
}

// New builds a town from ctx.
func New(ctx Context) (*Town, error) {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := ctx.Log
	if log == nil {
		log = zap.NewNop()
	}
	if ctx.Assets == nil {
		return nil, fmt.Errorf("town: no asset source")
	}
	if ctx.Overlay == nil {
		return nil, fmt.Errorf("town: no overlay")
	}

	cat, err := catalog.New(cfg.Entries())
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	highlight, err := cfg.Interaction.HighlightHex()
	if err != nil {
		return nil, err
	}

	t := &Town{
		cfg:           cfg,
		log:           log,
		scene:         scene.New(),
		queue:         loader.NewQueue(),
		catalog:       cat,
		registry:      tiles.NewRegistry(log.Named("tiles")),
		scheduler:     animation.NewScheduler(),
		viewport:      ctx.Viewport,
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
		dragThreshold: cfg.Interaction.DragThreshold,
	}

	t.camera = newCamera(cfg.Camera, t.width, t.height)

	t.tracker = progress.NewTracker(ctx.Overlay, ctx.Overlay, progress.Options{
		FadeDuration:  cfg.Overlay.FadeDuration,
		CompleteDelay: cfg.Overlay.CompleteDelay,
	}, log.Named("progress"))
	ctx.Overlay.SetAlpha(cfg.Overlay.InitialAlpha)

	t.batch = loader.NewManager(
		func() { t.tracker.Complete(t.now) },
		t.tracker.Progress,
	)
	t.batch.OnError = func(url string) {
		log.Warn("batch item failed", zap.String("url", url))
	}

	t.tileset = loader.New(ctx.Assets, t.queue, t.batch, log.Named("loader"))
	t.models = loader.New(ctx.Assets, t.queue, nil, log.Named("loader"))
	t.spawner = spawner.New(cat, t.models, t.scene, t.scheduler, log.Named("spawner"))

	var sound interaction.Sound = silent{}
	if ctx.Sound != nil {
		sound = ctx.Sound
	}
	t.ctrl = interaction.New(t.registry, tilePicker{camera: t.camera}, sound, t.spawner, interaction.Options{
		HoverInterval: cfg.Interaction.HoverInterval,
		Highlight:     highlight,
		Names:         cfg.Tiles,
	}, log.Named("interaction"))
	t.ctrl.Unresolved(cat)

	return t, nil
}

func newCamera(cfg config.CameraConfig, width, height int) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera(mgl32.Vec3(cfg.Position), mgl32.Vec3(cfg.Target))
	cam.FOV = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	if cfg.RotateSpeed > 0 {
		cam.DragSensitivity = cfg.RotateSpeed
	}
	if cfg.ZoomSpeed > 0 {
		cam.ZoomSensitivity = cfg.ZoomSpeed
	}
	cam.MinDistance = cfg.MinDistance
	if cfg.MaxDistance > 0 {
		cam.MaxDistance = cfg.MaxDistance
	}
	if cfg.MaxPolarAngle > 0 {
		cam.SetMaxPolarAngle(mgl32.DegToRad(cfg.MaxPolarAngle))
	}
	cam.SetDamping(cfg.DampingFactor)
	cam.SetAspect(width, height)
	return cam
}

// LoadTileset starts the batch load of the ground tiles. Every mesh whose
// name starts with the tile prefix becomes clickable once it arrives.
func (t *Town) LoadTileset() {
	path := t.cfg.Assets.Tileset
	t.tracker.Start(1)
	t.log.Info("loading tileset", zap.String("path", path))

	t.tileset.Load(path,
		func(res *loader.Result) {
			res.Scene.Traverse(func(n *scene.Node) {
				if n.IsMesh() && tiles.IsTileName(n.Name()) {
					t.registry.Add(n)
				}
			})
			t.scene.Add(res.Scene)
			if len(res.Animations) > 0 {
				mixer := newMixer(res)
				t.scheduler.Register(mixer)
			}
			t.log.Info("tileset ready", zap.Int("tiles", t.registry.Len()))
		},
		func(err error) {
			t.log.Error("tileset load failed", zap.String("path", path), zap.Error(err))
		},
	)
}

// Tick advances the town by one frame: pending load completions run, the
// overlay fades, animations step and the camera eases. dt is in seconds.
func (t *Town) Tick(now time.Time, dt float64) {
	t.now = now
	t.queue.Dispatch()
	t.tracker.Update(now)
	t.scheduler.Tick(float32(dt))
	t.camera.Update(dt)
}

// HandleEvent routes one input event.
func (t *Town) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventMouseDown:
		if e.Button == input.ButtonLeft {
			t.pressed = true
			t.dragging = false
			t.downX, t.downY = e.MouseX, e.MouseY
		}

	case input.EventMouseMove:
		if t.pressed {
			if !t.dragging && t.movedBeyondThreshold(e.MouseX, e.MouseY) {
				t.dragging = true
			}
			if t.dragging {
				t.camera.HandleDrag(float32(e.RelX), float32(e.RelY))
			}
		}
		t.ctrl.Move(float32(e.MouseX), float32(e.MouseY), float32(t.width), float32(t.height))

	case input.EventMouseUp:
		if e.Button != input.ButtonLeft {
			return
		}
		click := t.pressed && !t.dragging
		t.pressed, t.dragging = false, false
		if click {
			t.ctrl.Click(float32(e.MouseX), float32(e.MouseY), float32(t.width), float32(t.height))
		}

	case input.EventMouseWheel:
		t.camera.HandleZoom(e.WheelY)

	case input.EventWindowResize:
		t.Resize(e.Width, e.Height)
	}
}

func (t *Town) movedBeyondThreshold(x, y int) bool {
	dx := float64(x - t.downX)
	dy := float64(y - t.downY)
	return math.Hypot(dx, dy) > float64(t.dragThreshold)
}

// Resize updates the camera aspect and the viewport.
func (t *Town) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	t.width, t.height = width, height
	t.camera.SetAspect(width, height)
	if t.viewport != nil {
		t.viewport.Resize(width, height)
	}
}

// Wait blocks until every started load has posted its completion.
// Completions still run only on the next Tick.
func (t *Town) Wait() {
	t.tileset.Wait()
	t.models.Wait()
}

// Scene returns the rendered scene.
func (t *Town) Scene() *scene.Scene { return t.scene }

// Camera returns the orbit camera.
func (t *Town) Camera() *camera.OrbitCamera { return t.camera }

// Registry returns the clickable tiles.
func (t *Town) Registry() *tiles.Registry { return t.registry }

// Scheduler returns the animation scheduler.
func (t *Town) Scheduler() *animation.Scheduler { return t.scheduler }

// Tracker returns the loading progress tracker.
func (t *Town) Tracker() *progress.Tracker { return t.tracker }

// Spawner returns the model spawner.
func (t *Town) Spawner() *spawner.Spawner { return t.spawner }

// Controller returns the pointer interaction controller.
func (t *Town) Controller() *interaction.Controller { return t.ctrl }

type silent struct{}

func (silent) Play() error { return nil }
