// Package audio plays the engine hum heard while the camera flies.
package audio

import (
	"fmt"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Engine drives a looping synthesized hum that is paused unless running.
type Engine struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	pitch       float64 // Fundamental in Hz

	ctrl    *beep.Ctrl
	volume  *effects.Volume
	level   float64 // 0.0 to 1.0
	running bool
}

// New creates a silent engine; call Init to open the speaker.
func New(level, pitch float64) *Engine {
	return &Engine{
		sampleRate: DefaultSampleRate,
		pitch:      pitch,
		level:      clamp(level, 0, 1),
	}
}

// Init opens the speaker and starts the paused hum.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}

	if err := speaker.Init(e.sampleRate, e.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	e.ctrl = &beep.Ctrl{Streamer: Hum(e.sampleRate, e.pitch), Paused: !e.running}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2}
	e.applyLevel()
	speaker.Play(e.volume)

	e.initialized = true
	return nil
}

// Close shuts down the audio system.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	e.ctrl = nil
	e.volume = nil
	e.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (e *Engine) IsInitialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// SetRunning starts or pauses the hum. Calls that do not change state are
// cheap, so the frame loop may call it every frame.
func (e *Engine) SetRunning(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running == on {
		return
	}
	e.running = on
	if e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = !on
		speaker.Unlock()
	}
}

// Running reports whether the hum is audible.
func (e *Engine) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// SetVolume sets the hum level (0.0 to 1.0).
func (e *Engine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = clamp(level, 0, 1)
	if e.volume != nil {
		speaker.Lock()
		e.applyLevel()
		speaker.Unlock()
	}
}

// Volume returns the hum level.
func (e *Engine) Volume() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.level
}

func (e *Engine) applyLevel() {
	e.volume.Silent = e.level <= 0
	e.volume.Volume = gain(e.level)
}

// gain converts a linear level to the base-2 exponent effects.Volume takes.
func gain(level float64) float64 {
	if level <= 0 {
		return -16
	}
	return gomath.Log2(level)
}

// Hum returns an endless stereo tone: a fundamental plus a quieter octave,
// peaking below 1.0 so it never clips.
func Hum(sr beep.SampleRate, pitch float64) beep.Streamer {
	var phase float64
	step := pitch / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.6*gomath.Sin(2*gomath.Pi*phase) + 0.3*gomath.Sin(4*gomath.Pi*phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase >= 1 {
				phase--
			}
		}
		return len(samples), true
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
