package engine

import (
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/spectrum"
)

const (
	// DefaultRampSeconds is the transition time of input and output gain
	// changes.
	DefaultRampSeconds = 0.05

	// DefaultDriveRampSeconds is the transition time of drive and mix
	// changes.
	DefaultDriveRampSeconds = 0.02
)

// Option configures an Engine.
type Option func(*config) error

type config struct {
	fftSize       int
	analysisBlock int
	ringCapacity  int
	spectrumFloor float64
	meterFloor    float64
	rampSeconds   float64
	driveRamp     float64
}

func defaultConfig() config {
	return config{
		fftSize:       spectrum.DefaultFFTSize,
		ringCapacity:  buffer.DefaultRingCapacity,
		spectrumFloor: spectrum.DefaultFloorDB,
		meterFloor:    DefaultMeterFloorDB,
		rampSeconds:   DefaultRampSeconds,
		driveRamp:     DefaultDriveRampSeconds,
	}
}

// WithFFTSize sets the spectrum transform length (power of two).
func WithFFTSize(size int) Option {
	return func(cfg *config) error {
		if size < 16 || !core.IsPowerOfTwo(size) {
			return fmt.Errorf("engine fft size must be a power of two >= 16: %d", size)
		}

		cfg.fftSize = size

		return nil
	}
}

// WithAnalysisBlockSize sets how many samples each accumulated block holds.
// It defaults to the FFT size; smaller blocks give overlapping frames.
func WithAnalysisBlockSize(size int) Option {
	return func(cfg *config) error {
		if size <= 0 {
			return fmt.Errorf("engine analysis block size must be > 0: %d", size)
		}

		cfg.analysisBlock = size

		return nil
	}
}

// WithRingCapacity sets the slot count of every handoff queue.
func WithRingCapacity(capacity int) Option {
	return func(cfg *config) error {
		if capacity <= 0 {
			return fmt.Errorf("engine ring capacity must be > 0: %d", capacity)
		}

		cfg.ringCapacity = capacity

		return nil
	}
}

// WithSpectrumFloorDB sets the lowest level of a spectrum frame.
func WithSpectrumFloorDB(floor float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(floor) || floor >= 0 {
			return fmt.Errorf("engine spectrum floor must be finite and < 0: %f", floor)
		}

		cfg.spectrumFloor = floor

		return nil
	}
}

// WithMeterFloorDB sets the level meters report for silence.
func WithMeterFloorDB(floor float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(floor) || floor >= 0 {
			return fmt.Errorf("engine meter floor must be finite and < 0: %f", floor)
		}

		cfg.meterFloor = floor

		return nil
	}
}

// WithRampSeconds sets the transition time of gain changes. Zero makes
// changes immediate.
func WithRampSeconds(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("engine ramp time must be >= 0: %f", seconds)
		}

		cfg.rampSeconds = seconds

		return nil
	}
}

// WithDriveRampSeconds sets the transition time of drive and mix changes.
// Zero makes changes immediate.
func WithDriveRampSeconds(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("engine drive ramp time must be >= 0: %f", seconds)
		}

		cfg.driveRamp = seconds

		return nil
	}
}
