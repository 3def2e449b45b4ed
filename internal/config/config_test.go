package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Camera.Position != [3]float32{-7.02, 9.82, -17} {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}
	if cfg.Camera.Target != [3]float32{0, 1, 0} {
		t.Errorf("unexpected camera target %v", cfg.Camera.Target)
	}
	if cfg.Interaction.HoverInterval != 50*time.Millisecond {
		t.Errorf("expected hover interval 50ms, got %v", cfg.Interaction.HoverInterval)
	}
	if cfg.Overlay.FadeDuration != 3*time.Second {
		t.Errorf("expected fade duration 3s, got %v", cfg.Overlay.FadeDuration)
	}
	if cfg.Overlay.CompleteDelay != 500*time.Millisecond {
		t.Errorf("expected complete delay 500ms, got %v", cfg.Overlay.CompleteDelay)
	}
	if len(cfg.Catalog) != 8 {
		t.Errorf("expected 8 catalog entries, got %d", len(cfg.Catalog))
	}
	if got := cfg.Tiles["tilebighouses"]; got != "BigHouse" {
		t.Errorf("expected tilebighouses -> BigHouse, got %q", got)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestHighlightHex(t *testing.T) {
	tests := []struct {
		color   string
		want    uint32
		wantErr bool
	}{
		{"#555555", 0x555555, false},
		{"#ff8000", 0xff8000, false},
		{"#000000", 0, false},
		{"grey", 0, true},
	}

	for _, tt := range tests {
		got, err := InteractionConfig{HighlightColor: tt.color}.HighlightHex()
		if (err != nil) != tt.wantErr {
			t.Errorf("HighlightHex(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("HighlightHex(%q) = %#06x, want %#06x", tt.color, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

camera:
  position: [1, 2, 3]
  fov: 60

interaction:
  hover_interval: 100ms
  highlight_color: "#202020"

overlay:
  fade_duration: 1s

catalog:
  - name: Dock
    path: models/dock.glb
    position: [-8, 0, -7]

tiles:
  tilesmallhouses: SmallHouses

logging:
  level: "debug"
  log_file: "townview.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || !cfg.Window.Fullscreen {
		t.Errorf("window section not applied: %+v", cfg.Window)
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected camera position [1 2 3], got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected untouched near plane 0.1, got %v", cfg.Camera.Near)
	}
	if cfg.Interaction.HoverInterval != 100*time.Millisecond {
		t.Errorf("expected hover interval 100ms, got %v", cfg.Interaction.HoverInterval)
	}
	if cfg.Overlay.FadeDuration != time.Second {
		t.Errorf("expected fade duration 1s, got %v", cfg.Overlay.FadeDuration)
	}

	// catalog list replaces the defaults
	if len(cfg.Catalog) != 1 || cfg.Catalog[0].Path != "models/dock.glb" {
		t.Errorf("expected single overridden catalog entry, got %+v", cfg.Catalog)
	}

	// tile table merges
	if cfg.Tiles["tilesmallhouses"] != "SmallHouses" {
		t.Errorf("expected tile override, got %q", cfg.Tiles["tilesmallhouses"])
	}
	if cfg.Tiles["tilecastle"] != "Castle" {
		t.Errorf("expected default tile entry to survive merge, got %q", cfg.Tiles["tilecastle"])
	}

	if cfg.Logging.LogFile != "townview.log" {
		t.Errorf("expected log file 'townview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"no tileset", func(c *Config) { c.Assets.Tileset = "" }},
		{"zero fade", func(c *Config) { c.Overlay.FadeDuration = 0 }},
		{"bad colour", func(c *Config) { c.Interaction.HighlightColor = "#zz" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets flag appends a root",
			setup: func() { *flagAssets = "/srv/town" },
			verify: func(t *testing.T, cfg *Config) {
				roots := cfg.Assets.Roots
				if len(roots) != 2 || roots[1] != "/srv/town" {
					t.Errorf("expected extra asset root, got %v", roots)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected muted audio")
				}
			},
			teardown: func() { *flagMute = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Audio.Muted = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.Audio.Muted {
		t.Error("expected muted flag to survive save")
	}
	if loaded.Interaction.HoverInterval != 50*time.Millisecond {
		t.Errorf("hover interval did not survive save: %v", loaded.Interaction.HoverInterval)
	}
}

func TestEntries(t *testing.T) {
	cfg := Default()
	entries := cfg.Entries()
	if len(entries) != len(cfg.Catalog) {
		t.Fatalf("expected %d entries, got %d", len(cfg.Catalog), len(entries))
	}
	for i, e := range entries {
		if e.Name != cfg.Catalog[i].Name || [3]float32(e.Placement) != cfg.Catalog[i].Position {
			t.Errorf("entry %d mismatch: %+v vs %+v", i, e, cfg.Catalog[i])
		}
	}
}

func TestLightingRig(t *testing.T) {
	rig, err := Default().Lighting.Rig()
	if err != nil {
		t.Fatalf("Rig: %v", err)
	}
	if rig.Ambient.Intensity != 1.5 || rig.Sun.Intensity != 3.6 {
		t.Errorf("unexpected intensities %v / %v", rig.Ambient.Intensity, rig.Sun.Intensity)
	}
	if rig.Sun.Position.X() != -8 {
		t.Errorf("unexpected sun position %v", rig.Sun.Position)
	}

	bad := LightingConfig{AmbientColor: "#fff", SunColor: "sunny"}
	if _, err := bad.Rig(); err == nil {
		t.Error("expected error for bad sun colour")
	}
}
