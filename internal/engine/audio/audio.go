// Package audio plays avatar effect sounds.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/motioncore/internal/config"
	"github.com/Faultbox/motioncore/internal/logger"
	"github.com/Faultbox/motioncore/internal/motion"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager plays one sound per effect through a shared mixer.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
	sounds   map[motion.Effect][]byte
}

// New creates a new audio manager.
func New(cfg config.AudioConfig) *Manager {
	return &Manager{
		masterVolume: clamp(cfg.MasterVolume, 0, 1),
		sfxVolLevel:  clamp(cfg.SFXVolume, 0, 1),
		sfxMixer:     &beep.Mixer{},
		sounds:       make(map[motion.Effect][]byte),
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
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

	if m.initialized {
		speaker.Clear()
	}
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

// LoadEffects reads every <effect>.wav in dir. Returns how many were found.
func (m *Manager) LoadEffects(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read sound dir: %w", err)
	}

	loaded := make(map[motion.Effect][]byte)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		effect := motion.Effect(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		loaded[effect] = data
	}

	m.mu.Lock()
	for effect, data := range loaded {
		m.sounds[effect] = data
	}
	m.mu.Unlock()

	logger.Info("effect sounds loaded", zap.String("dir", dir), zap.Int("count", len(loaded)))
	return len(loaded), nil
}

// HasEffect reports whether a sound is loaded for e.
func (m *Manager) HasEffect(e motion.Effect) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sounds[e]
	return ok
}

// PlayEffect plays the sound loaded for e, if any. Failures are logged.
func (m *Manager) PlayEffect(e motion.Effect) {
	m.mu.RLock()
	data, ok := m.sounds[e]
	m.mu.RUnlock()
	if !ok {
		return
	}
	if err := m.PlaySFX(data); err != nil && !errors.Is(err, ErrNotInitialized) {
		logger.Warn("effect sound failed", zap.String("effect", string(e)), zap.Error(err))
	}
}

// PlaySFX plays a sound effect from WAV data.
func (m *Manager) PlaySFX(data []byte) error {
	m.mu.RLock()
	initialized := m.initialized
	sfxVol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}

	// Decode WAV
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	// Resample if needed
	var resampled beep.Streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	} else {
		resampled = streamer
	}

	volStreamer := &effects.Volume{
		Streamer: resampled,
		Base:     2,
		Volume:   volumeToDb(sfxVol),
		Silent:   sfxVol <= 0,
	}

	// Add to mixer (concurrent playback)
	m.sfxMixer.Add(volStreamer)

	return nil
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
