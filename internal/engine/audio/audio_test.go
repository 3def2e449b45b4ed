package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestVolumeConversion(t *testing.T) {
	// Test volume to dB conversion
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Check default volumes
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.GetMasterVolume())
	}
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.GetSFXVolume())
	}
	if m.IsInitialized() {
		t.Error("new manager should not be initialized")
	}
}

func TestSetVolume(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	if m.GetMasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.GetMasterVolume())
	}

	// Test clamping
	m.SetSFXVolume(2.0)
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("sfx volume = %f, want 1.0 (clamped)", m.GetSFXVolume())
	}

	m.SetMasterVolume(-1.0)
	if m.GetMasterVolume() != 0.0 {
		t.Errorf("master volume = %f, want 0.0 (clamped)", m.GetMasterVolume())
	}
}

// clickWAV encodes a short silent clip at a foreign sample rate.
func clickWAV(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "click.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Silence(2205), format); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestLoadWAVResamples(t *testing.T) {
	m := New()
	s, err := m.Load("sound-effects/click.wav", clickWAV(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// 0.1s at 22.05kHz becomes roughly 4410 samples at 44.1kHz
	if s.Len() < 4000 || s.Len() > 4800 {
		t.Errorf("Len() = %d, want about 4410", s.Len())
	}
	if s.Name() != "sound-effects/click.wav" {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := New().Load("click.ogg", []byte{1, 2, 3}); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := New().Load("click.wav", []byte("garbage")); err == nil {
		t.Error("expected error for corrupt wav")
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New()
	s, err := m.Load("click.wav", clickWAV(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Play(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play() = %v, want ErrNotInitialized", err)
	}
	if err := (Silent{}).Play(); err != nil {
		t.Errorf("Silent.Play() = %v", err)
	}
}
