// Package window generates cosine-sum window functions and reusable
// windowing tables for spectral analysis.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
)

// Cosine-sum coefficients a_k of w(x) = Σ a_k cos(2πkx).
var (
	rectangularCoeffs     = []float64{1}
	hannCoeffs            = []float64{0.5, -0.5}
	hammingCoeffs         = []float64{0.54, -0.46}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
)

var typeNames = map[Type]string{
	TypeRectangular:         "rectangular",
	TypeHann:                "hann",
	TypeHamming:             "hamming",
	TypeBlackman:            "blackman",
	TypeBlackmanHarris4Term: "blackman-harris",
}

// String returns the window name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a window name as returned by Type.String.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown window type: %q", name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Unknown types
// generate a rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	coeffs := cosineCoeffs(t)
	out := make([]float64, length)
	for i := range out {
		out[i] = cosineFromCoeffs(samplePosition(i, length, cfg.periodic), coeffs)
	}

	return out
}

// EquivalentNoiseBandwidth returns the ENBW of coeffs in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// Table is a precomputed window applied repeatedly to buffers of one size.
type Table struct {
	typ          Type
	coeffs       []float64
	coherentGain float64
}

// NewTable precomputes a window of the given type and size.
func NewTable(t Type, size int, opts ...Option) (*Table, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	coeffs := Generate(t, size, opts...)

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return &Table{typ: t, coeffs: coeffs, coherentGain: sum / float64(size)}, nil
}

// Apply multiplies buf in place by the window. buf must have the table size.
func (w *Table) Apply(buf []float64) error {
	if len(buf) != len(w.coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(buf, w.coeffs)

	return nil
}

// Len returns the table size.
func (w *Table) Len() int { return len(w.coeffs) }

// Type returns the window type.
func (w *Table) Type() Type { return w.typ }

// CoherentGain returns the mean coefficient value, the amplitude a windowed
// bin-centred sinusoid retains.
func (w *Table) CoherentGain() float64 { return w.coherentGain }

// Coefficients returns the table contents. Callers must not modify them.
func (w *Table) Coefficients() []float64 { return w.coeffs }

func cosineCoeffs(t Type) []float64 {
	switch t {
	case TypeHann:
		return hannCoeffs
	case TypeHamming:
		return hammingCoeffs
	case TypeBlackman:
		return blackmanCoeffs
	case TypeBlackmanHarris4Term:
		return blackmanHarris4Coeffs
	default:
		return rectangularCoeffs
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
