package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/core"
)

const (
	// MinDisplayHz and MaxDisplayHz bound the logarithmic frequency axis.
	MinDisplayHz = 20.0
	MaxDisplayHz = 20000.0

	binStride = 2
)

// Point is a pixel-space coordinate.
type Point struct {
	X, Y float64
}

// Bounds is the pixel rectangle a path is mapped into. Y grows downwards, so
// 0 dB lands on Y and the floor on Y+Height.
type Bounds struct {
	X, Y, Width, Height float64
}

// Path is a piecewise-linear rendering of one Frame.
type Path []Point

// PathGenerator maps Frames into Paths and queues them for an observer.
type PathGenerator struct {
	fftSize    int
	sampleRate float64
	floorDB    float64

	scratch Path
	paths   *buffer.Ring[[]Point]
}

// NewPathGenerator preallocates a path queue for frames of fftSize/2 bins.
func NewPathGenerator(fftSize int, sampleRate, floorDB float64, capacity int) (*PathGenerator, error) {
	if fftSize < 2 || !core.IsPowerOfTwo(fftSize) {
		return nil, fmt.Errorf("path fft size must be a power of two: %d", fftSize)
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("path sample rate must be > 0: %f", sampleRate)
	}

	if floorDB >= 0 || !core.IsFinite(floorDB) {
		return nil, fmt.Errorf("path floor must be finite and < 0: %f", floorDB)
	}

	maxPoints := fftSize/2/binStride + 1

	paths, err := buffer.NewSliceRing[Point](capacity, maxPoints)
	if err != nil {
		return nil, err
	}

	return &PathGenerator{
		fftSize:    fftSize,
		sampleRate: sampleRate,
		floorDB:    floorDB,
		scratch:    make(Path, 0, maxPoints),
		paths:      paths,
	}, nil
}

// BinFrequency returns the centre frequency of bin in Hz.
func (g *PathGenerator) BinFrequency(bin int) float64 {
	return float64(bin) * g.sampleRate / float64(g.fftSize)
}

// Map converts a frequency and level to a point within bounds. Frequencies
// outside the display range map outside the bounds; levels are clamped to
// [floor, 0] dB.
func (g *PathGenerator) Map(bounds Bounds, freqHz, levelDB float64) Point {
	lo := math.Log10(MinDisplayHz)
	hi := math.Log10(MaxDisplayHz)

	x := bounds.X + bounds.Width*(math.Log10(freqHz)-lo)/(hi-lo)

	level := core.Clamp(levelDB, g.floorDB, 0)
	y := bounds.Y + bounds.Height*(level/g.floorDB)

	return Point{X: x, Y: y}
}

// Generate maps frame into bounds and queues the path. The path opens at the
// left edge with the DC level, then follows every second bin starting at bin
// 1. Bins whose coordinates are not finite are skipped. It reports whether
// the path was queued.
func (g *PathGenerator) Generate(bounds Bounds, frame Frame) bool {
	p := g.scratch[:0]

	if len(frame) > 0 {
		start := g.Map(bounds, MinDisplayHz, frame[0])
		if core.IsFinite(start.Y) {
			p = append(p, start)
		}
	}

	for bin := 1; bin < len(frame) && len(p) < cap(p); bin += binStride {
		pt := g.Map(bounds, g.BinFrequency(bin), frame[bin])
		if !core.IsFinite(pt.X) || !core.IsFinite(pt.Y) {
			continue
		}

		p = append(p, pt)
	}

	g.scratch = p

	return g.paths.Push(p)
}

// PathsAvailable returns the number of queued paths.
func (g *PathGenerator) PathsAvailable() int { return g.paths.Available() }

// PullPath copies the oldest queued path into dst.
func (g *PathGenerator) PullPath(dst *Path) bool {
	s := []Point(*dst)
	ok := g.paths.Pull(&s)
	*dst = Path(s)

	return ok
}

// Reset drops queued paths.
func (g *PathGenerator) Reset() { g.paths.Reset() }
