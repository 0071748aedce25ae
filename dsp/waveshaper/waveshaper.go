package waveshaper

import (
	"fmt"
	"math"
)

// Output scales applied after each curve.
const (
	SoftClipScale = 0.5
	HardClipScale = 1.0
	SaturateScale = 0.8
	DiodeScale    = 0.3
	FuzzScale     = 0.8
)

// UnityDrive is the drive at which SoftClip, HardClip and Saturate see
// their input unscaled; they scale it by drive/UnityDrive. The drive control
// runs to twice this value.
const UnityDrive = 10.0

const (
	// Diode law constants: saturation term, thermal voltage and ideality.
	diodeIs    = 0.1
	diodeVt    = 0.0253
	diodeN     = 1.68
	diodeDrive = 16.0

	// exp(maxExponent) stays finite after multiplication by the largest drive.
	maxExponent = 700.0
)

// Algorithm identifies a waveshaping curve.
type Algorithm int

const (
	AlgorithmSoftClip Algorithm = iota
	AlgorithmHardClip
	AlgorithmSaturate
	AlgorithmDiode
	AlgorithmFuzz
	AlgorithmBitcrush
)

var algorithmNames = [...]string{
	AlgorithmSoftClip: "soft-clip",
	AlgorithmHardClip: "hard-clip",
	AlgorithmSaturate: "saturate",
	AlgorithmDiode:    "diode",
	AlgorithmFuzz:     "fuzz",
	AlgorithmBitcrush: "bitcrush",
}

// String returns the algorithm's short name.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}

	return algorithmNames[a]
}

// Valid reports whether a names a known curve.
func (a Algorithm) Valid() bool {
	return a >= AlgorithmSoftClip && a <= AlgorithmBitcrush
}

// Shape applies the curve selected by a. Unknown algorithms return x.
func Shape(a Algorithm, x, drive float64) float64 {
	switch a {
	case AlgorithmSoftClip:
		return SoftClip(x, drive)
	case AlgorithmHardClip:
		return HardClip(x, drive)
	case AlgorithmSaturate:
		return Saturate(x, drive)
	case AlgorithmDiode:
		return Diode(x, drive)
	case AlgorithmFuzz:
		return Fuzz(x, drive)
	case AlgorithmBitcrush:
		return Bitcrush(x, drive)
	default:
		return x
	}
}

// Bound returns the largest output magnitude a can produce for inputs whose
// drive-scaled value stays within [-1, 1]. Saturate is unbounded above, so
// its bound covers that input range only.
func Bound(a Algorithm) float64 {
	switch a {
	case AlgorithmSoftClip:
		return SoftClipScale
	case AlgorithmHardClip:
		return HardClipScale
	case AlgorithmSaturate:
		return SaturateScale * (1 - DefaultCurve.Q + 1/DefaultCurve.K + math.Abs(DefaultCurve.offset()))
	case AlgorithmDiode:
		return DiodeScale
	case AlgorithmFuzz:
		return FuzzScale
	case AlgorithmBitcrush:
		return 0
	default:
		return math.Inf(1)
	}
}

// SoftClip scales x by drive/10, applies 1.5(x - x³/3) inside (-1, 1) and
// saturates to ±1 outside, then halves the result.
func SoftClip(x, drive float64) float64 {
	x *= drive / UnityDrive

	if math.Abs(x) < 1 {
		return SoftClipScale * 1.5 * (x - x*x*x/3)
	}

	return SoftClipScale * math.Copysign(1, x)
}

// HardClip scales x by drive/10, clamps to [-1, 1] and softens the edge with
// 1.5x - 0.5x³.
func HardClip(x, drive float64) float64 {
	x = clampUnit(x * drive / UnityDrive)

	return HardClipScale * (1.5*x - 0.5*x*x*x)
}

// Curve holds the shape constants of the exponential saturation
// (x-Q)/(1-e^(-K(x-Q))) + Q/(1-e^(KQ)). Q is the operating-point offset and
// K the steepness; Q must be non-zero.
type Curve struct {
	Q float64
	K float64
}

// DefaultCurve is the curve used by Saturate.
var DefaultCurve = Curve{Q: -1.5, K: 5}

// Apply evaluates the unscaled curve at x. The singularity at x == Q is
// removable and evaluates to its limit 1/K + Q/(1-e^(KQ)).
func (c Curve) Apply(x float64) float64 {
	u := x - c.Q
	if u == 0 {
		return 1/c.K + c.offset()
	}

	return u/-math.Expm1(-c.K*u) + c.offset()
}

func (c Curve) offset() float64 {
	return c.Q / -math.Expm1(c.K*c.Q)
}

// Saturate scales x by drive/10 and applies DefaultCurve, scaled by 0.8.
// The curve passes through the origin and is asymmetric: it flattens towards
// Q/(1-e^(KQ)) for negative input and grows linearly for large positive input.
func Saturate(x, drive float64) float64 {
	return SaturateScale * DefaultCurve.Apply(x*drive/UnityDrive)
}

// Diode models a diode clipper as (2/π)·atan((e^(Is·x/(Vt·n)) - 1)·16·drive),
// scaled by 0.3.
func Diode(x, drive float64) float64 {
	exponent := diodeIs * x / (diodeVt * diodeN)
	if exponent > maxExponent {
		exponent = maxExponent
	}

	current := math.Exp(exponent) - 1

	return DiodeScale * (2 / math.Pi) * math.Atan(current*drive*diodeDrive)
}

// Fuzz applies the asymmetric exponential soft clip sign(x)(1 - e^(-|x·drive|))
// followed by half-wave rectification, scaled by 0.8.
func Fuzz(x, drive float64) float64 {
	xd := x * drive
	y := math.Copysign(1-math.Exp(-math.Abs(xd)), xd)

	return FuzzScale * (y + math.Abs(y)) / 2
}

// Bitcrush is not implemented and returns silence for every input.
func Bitcrush(_, _ float64) float64 {
	return 0
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}

	if x > 1 {
		return 1
	}

	return x
}
