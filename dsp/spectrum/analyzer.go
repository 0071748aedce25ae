package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/window"
)

const (
	// DefaultFFTSize is the analysis window length.
	DefaultFFTSize = 8192
	// DefaultFloorDB is the lowest decibel value a frame bin can hold.
	DefaultFloorDB = -48.0
)

// ErrEmptyBlock is returned by ProduceFrame for a zero-length block.
var ErrEmptyBlock = errors.New("spectrum: empty block")

// Frame holds one decibel magnitude per bin; its length is FFT size / 2.
type Frame []float64

type forwardPlan interface {
	Forward(dst, src []complex128) error
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig) error

type analyzerConfig struct {
	fftSize  int
	floorDB  float64
	capacity int
	window   window.Type
}

// WithFFTSize sets the transform length. It must be a power of two >= 16.
func WithFFTSize(size int) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		if size < 16 || !core.IsPowerOfTwo(size) {
			return fmt.Errorf("spectrum fft size must be a power of two >= 16: %d", size)
		}

		cfg.fftSize = size

		return nil
	}
}

// WithFloorDB sets the decibel floor. It must be finite and negative.
func WithFloorDB(floor float64) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		if !core.IsFinite(floor) || floor >= 0 {
			return fmt.Errorf("spectrum floor must be finite and < 0: %f", floor)
		}

		cfg.floorDB = floor

		return nil
	}
}

// WithFrameCapacity sets how many frames the analyzer queues.
func WithFrameCapacity(capacity int) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		if capacity <= 0 {
			return fmt.Errorf("spectrum frame capacity must be > 0: %d", capacity)
		}

		cfg.capacity = capacity

		return nil
	}
}

// WithWindow selects the analysis window.
func WithWindow(t window.Type) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		cfg.window = t
		return nil
	}
}

// Analyzer converts blocks of samples into decibel frames. It keeps a working
// buffer of the last FFT-size samples, so blocks shorter than the transform
// overlap with the history they are appended to.
//
// ProduceFrame and the frame queue's consumer may run on different
// goroutines; ProduceFrame itself must not be called concurrently.
type Analyzer struct {
	size    int
	floorDB float64
	table   *window.Table
	plan    forwardPlan

	work     []float64
	windowed []float64
	in       []complex128
	out      []complex128
	re       []float64
	im       []float64
	frame    Frame

	frames *buffer.Ring[[]float64]
}

// NewAnalyzer allocates every buffer the analyzer will touch.
func NewAnalyzer(opts ...AnalyzerOption) (*Analyzer, error) {
	cfg := analyzerConfig{
		fftSize:  DefaultFFTSize,
		floorDB:  DefaultFloorDB,
		capacity: buffer.DefaultRingCapacity,
		window:   window.TypeBlackmanHarris4Term,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	table, err := window.NewTable(cfg.window, cfg.fftSize, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("spectrum window: %w", err)
	}

	plan, err := algofft.NewPlan64(cfg.fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum init fft plan: %w", err)
	}

	bins := cfg.fftSize / 2

	frames, err := buffer.NewSliceRing[float64](cfg.capacity, bins)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		size:     cfg.fftSize,
		floorDB:  cfg.floorDB,
		table:    table,
		plan:     plan,
		work:     make([]float64, cfg.fftSize),
		windowed: make([]float64, cfg.fftSize),
		in:       make([]complex128, cfg.fftSize),
		out:      make([]complex128, cfg.fftSize),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		frame:    make(Frame, bins),
		frames:   frames,
	}

	return a, nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.size }

// Bins returns the frame length.
func (a *Analyzer) Bins() int { return a.size / 2 }

// FloorDB returns the decibel floor.
func (a *Analyzer) FloorDB() float64 { return a.floorDB }

// ProduceFrame shifts block into the working buffer, computes a frame and
// queues it. It reports whether the frame was queued; a full queue drops the
// frame. Blocks longer than the FFT size contribute only their last samples.
func (a *Analyzer) ProduceFrame(block []float64) (bool, error) {
	if len(block) == 0 {
		return false, ErrEmptyBlock
	}

	if len(block) >= a.size {
		copy(a.work, block[len(block)-a.size:])
	} else {
		copy(a.work, a.work[len(block):])
		copy(a.work[a.size-len(block):], block)
	}

	if err := a.compute(); err != nil {
		return false, err
	}

	return a.frames.Push(a.frame), nil
}

func (a *Analyzer) compute() error {
	copy(a.windowed, a.work)

	if err := a.table.Apply(a.windowed); err != nil {
		return err
	}

	for i, s := range a.windowed {
		a.in[i] = complex(s, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum forward fft: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}

	vecmath.Magnitude(a.frame, a.re, a.im)
	vecmath.ScaleBlockInPlace(a.frame, 1/float64(a.size/2))

	for i, m := range a.frame {
		a.frame[i] = toDB(m, a.floorDB)
	}

	return nil
}

// FramesAvailable returns the number of queued frames.
func (a *Analyzer) FramesAvailable() int { return a.frames.Available() }

// PullFrame copies the oldest queued frame into dst. dst is resized to the
// bin count when needed.
func (a *Analyzer) PullFrame(dst *Frame) bool {
	s := []float64(*dst)
	ok := a.frames.Pull(&s)
	*dst = Frame(s)

	return ok
}

// Reset clears the working buffer and drops queued frames. It must not run
// concurrently with either side of the queue.
func (a *Analyzer) Reset() {
	clear(a.work)
	a.frames.Reset()
}

func toDB(mag, floor float64) float64 {
	if !(mag > 0) {
		return floor
	}

	db := 20 * math.Log10(mag)
	if db < floor || math.IsNaN(db) {
		return floor
	}

	return db
}
