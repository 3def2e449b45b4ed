// Package viewer implements the main loop: it owns the window, the
// renderer and the audio device, and drives a town once per frame.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/assets"
	"github.com/Faultbox/townview/internal/config"
	"github.com/Faultbox/townview/internal/engine/audio"
	"github.com/Faultbox/townview/internal/engine/input"
	"github.com/Faultbox/townview/internal/engine/renderer"
	"github.com/Faultbox/townview/internal/engine/window"
	"github.com/Faultbox/townview/internal/town"
	"github.com/Faultbox/townview/internal/town/interaction"
)

// Viewer is the running application.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	overlay  *renderer.Overlay
	town     *town.Town
}

// New opens the window and builds the town. Audio failures are logged
// and leave the viewer silent.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{cfg: cfg, log: log}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	lights, err := cfg.Lighting.Rig()
	if err != nil {
		v.window.Close()
		return nil, err
	}

	// Renderer needs the GL context from the window
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh, Lights: lights}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.overlay = renderer.NewOverlay(cfg.Overlay.InitialAlpha)

	src := assets.NewSource(cfg.Assets.Roots...)
	v.town, err = town.New(town.Context{
		Config:   cfg,
		Assets:   src,
		Overlay:  v.overlay,
		Sound:    v.clickSound(src),
		Viewport: viewport{v},
		Log:      log.Named("town"),
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create town: %w", err)
	}

	w, h := v.window.GetSize()
	v.town.Resize(w, h)

	log.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) clickSound(src *assets.Source) interaction.Sound {
	if v.cfg.Audio.Muted {
		return audio.Silent{}
	}

	m := audio.New()
	if err := m.Init(); err != nil {
		v.log.Warn("audio unavailable", zap.Error(err))
		return audio.Silent{}
	}
	v.audio = m
	m.SetSFXVolume(v.cfg.Audio.SFXVolume)

	data, err := src.Read(v.cfg.Assets.ClickSound)
	if err != nil {
		v.log.Warn("click sound missing", zap.Error(err))
		return audio.Silent{}
	}
	snd, err := m.Load(v.cfg.Assets.ClickSound, data)
	if err != nil {
		v.log.Warn("click sound unreadable", zap.Error(err))
		return audio.Silent{}
	}
	return snd
}

// Run starts loading and runs the main loop until the window closes.
func (v *Viewer) Run() error {
	v.running = true
	v.town.LoadTileset()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			if event.Type == input.EventKeyDown && event.Key == sdl.SCANCODE_ESCAPE {
				v.running = false
			}
			v.town.HandleEvent(event)
		}

		v.town.Tick(now, dt)
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if now.Sub(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = now
		}
	}

	return nil
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.DrawScene(v.town.Scene(), v.town.Camera().ViewProjection())
	v.renderer.DrawOverlay(v.overlay)
	v.renderer.End()
}

// Close waits for in-flight loads and releases resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.town != nil {
		v.town.Wait()
	}
	if v.audio != nil {
		v.audio.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// viewport resizes the GL viewport to the drawable size, which differs
// from the window size on high-density displays.
type viewport struct{ v *Viewer }

func (p viewport) Resize(int, int) {
	p.v.renderer.Resize(p.v.window.DrawableSize())
}
