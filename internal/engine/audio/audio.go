// Package audio provides sound effect playback for UI feedback.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init succeeded.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager owns the speaker and mixes sound effects.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sampleRate:   DefaultSampleRate,
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	// Start SFX mixer
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences every sound without changing the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Sound is a decoded effect kept in memory for repeated playback.
type Sound struct {
	name   string
	buffer *beep.Buffer
	m      *Manager
}

// Load decodes an MP3 or WAV effect, chosen by the name's extension, and
// resamples it to the mixer rate.
func (m *Manager) Load(name string, data []byte) (*Sound, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	case ".wav":
		streamer, format, err = wav.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("decode %s: unsupported audio format", name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer streamer.Close()

	// Resample if needed
	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resampled)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return &Sound{name: name, buffer: buf, m: m}, nil
}

// Name returns the name the sound was loaded under.
func (s *Sound) Name() string {
	return s.name
}

// Len returns the sound length in samples at the mixer rate.
func (s *Sound) Len() int {
	return s.buffer.Len()
}

// Duration returns the sound length.
func (s *Sound) Duration() time.Duration {
	return s.m.sampleRate.D(s.buffer.Len())
}

// Play starts the sound on the SFX mixer and returns immediately.
// Overlapping plays mix together.
func (s *Sound) Play() error {
	s.m.mu.RLock()
	initialized := s.m.initialized
	muted := s.m.muted
	sfxVol := s.m.masterVolume * s.m.sfxVolLevel
	s.m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if muted || sfxVol <= 0 {
		return nil
	}

	// Apply volume
	volStreamer := &effects.Volume{
		Streamer: s.buffer.Streamer(0, s.buffer.Len()),
		Base:     10,
		Volume:   volumeToDb(sfxVol) / 20,
	}

	// Add to mixer (concurrent playback)
	speaker.Lock()
	s.m.sfxMixer.Add(volStreamer)
	speaker.Unlock()

	return nil
}

// Silent is a sound that never plays. It stands in when audio is muted or
// the device could not be opened.
type Silent struct{}

// Play does nothing.
func (Silent) Play() error { return nil }
