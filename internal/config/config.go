// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/townview/internal/engine/lighting"
	"github.com/Faultbox/townview/internal/town/catalog"
	"github.com/Faultbox/townview/internal/town/interaction"
)

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Camera      CameraConfig      `yaml:"camera"`
	Audio       AudioConfig       `yaml:"audio"`
	Assets      AssetsConfig      `yaml:"assets"`
	Interaction InteractionConfig `yaml:"interaction"`
	Overlay     OverlayConfig     `yaml:"overlay"`
	Lighting    LightingConfig    `yaml:"lighting"`
	Catalog     []CatalogEntry    `yaml:"catalog"`
	Tiles       map[string]string `yaml:"tiles"` // tile mesh name -> catalog key
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the orbit camera setup.
type CameraConfig struct {
	Position      [3]float32 `yaml:"position,flow"`
	Target        [3]float32 `yaml:"target,flow"`
	FOV           float32    `yaml:"fov"` // vertical, degrees
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	DampingFactor float32    `yaml:"damping_factor"`
	MaxPolarAngle float32    `yaml:"max_polar_angle"` // degrees from straight up
	RotateSpeed   float32    `yaml:"rotate_speed"`
	ZoomSpeed     float32    `yaml:"zoom_speed"`
	MinDistance   float32    `yaml:"min_distance"`
	MaxDistance   float32    `yaml:"max_distance"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	SFXVolume float64 `yaml:"sfx_volume"`
	Muted     bool    `yaml:"muted"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Roots      []string `yaml:"roots"` // searched last to first
	Tileset    string   `yaml:"tileset"`
	ClickSound string   `yaml:"click_sound"`
}

// InteractionConfig holds pointer interaction settings.
type InteractionConfig struct {
	HoverInterval  time.Duration `yaml:"hover_interval"`
	HighlightColor string        `yaml:"highlight_color"`
	DragThreshold  float32       `yaml:"drag_threshold"` // pixels
}

// OverlayConfig holds loading overlay settings.
type OverlayConfig struct {
	InitialAlpha  float32       `yaml:"initial_alpha"`
	FadeDuration  time.Duration `yaml:"fade_duration"`
	CompleteDelay time.Duration `yaml:"complete_delay"`
}

// LightingConfig holds the scene lights.
type LightingConfig struct {
	AmbientColor     string     `yaml:"ambient_color"`
	AmbientIntensity float32    `yaml:"ambient_intensity"`
	SunColor         string     `yaml:"sun_color"`
	SunIntensity     float32    `yaml:"sun_intensity"`
	SunPosition      [3]float32 `yaml:"sun_position,flow"`
}

// CatalogEntry describes one spawnable model.
type CatalogEntry struct {
	Name     string     `yaml:"name"`
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position,flow"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Townview",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:      [3]float32{-7.02, 9.82, -17},
			Target:        [3]float32{0, 1, 0},
			FOV:           75,
			Near:          0.1,
			Far:           100,
			DampingFactor: 0.05,
			MaxPolarAngle: 90,
			RotateSpeed:   0.005,
			ZoomSpeed:     0.1,
			MinDistance:   2,
			MaxDistance:   60,
		},
		Audio: AudioConfig{
			SFXVolume: 0.8,
		},
		Assets: AssetsConfig{
			Roots:      []string{"."},
			Tileset:    "assets/Tileset.glb",
			ClickSound: "sound-effects/button-sound.mp3",
		},
		Interaction: InteractionConfig{
			HoverInterval:  50 * time.Millisecond,
			HighlightColor: "#555555",
			DragThreshold:  4,
		},
		Overlay: OverlayConfig{
			InitialAlpha:  1,
			FadeDuration:  3 * time.Second,
			CompleteDelay: 500 * time.Millisecond,
		},
		Lighting: LightingConfig{
			AmbientColor:     "#ffffff",
			AmbientIntensity: 1.5,
			SunColor:         "#ffffff",
			SunIntensity:     3.6,
			SunPosition:      [3]float32{-8, 7, 1.4},
		},
		Catalog: defaultCatalog(),
		Tiles:   interaction.DefaultNames(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultCatalog() []CatalogEntry {
	var out []CatalogEntry
	for _, e := range catalog.DefaultEntries() {
		out = append(out, CatalogEntry{Name: e.Name, Path: e.Path, Position: e.Placement})
	}
	return out
}

// Entries converts the configured catalog section.
func (c *Config) Entries() []catalog.Entry {
	out := make([]catalog.Entry, 0, len(c.Catalog))
	for _, e := range c.Catalog {
		out = append(out, catalog.Entry{Name: e.Name, Path: e.Path, Placement: e.Position})
	}
	return out
}

// HighlightHex parses the hover highlight colour into a 0xRRGGBB value.
func (c InteractionConfig) HighlightHex() (uint32, error) {
	col, err := colorful.Hex(c.HighlightColor)
	if err != nil {
		return 0, fmt.Errorf("highlight color %q: %w", c.HighlightColor, err)
	}
	r, g, b := col.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}

// Rig builds the light rig. The sun shines toward the origin.
func (c LightingConfig) Rig() (lighting.Rig, error) {
	ambient, err := lighting.ParseColor(c.AmbientColor)
	if err != nil {
		return lighting.Rig{}, err
	}
	sun, err := lighting.ParseColor(c.SunColor)
	if err != nil {
		return lighting.Rig{}, err
	}
	return lighting.Rig{
		Ambient: lighting.Light{Color: ambient, Intensity: c.AmbientIntensity},
		Sun: lighting.Directional{
			Light:    lighting.Light{Color: sun, Intensity: c.SunIntensity},
			Position: c.SunPosition,
		},
	}, nil
}
