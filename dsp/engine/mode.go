package engine

import (
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/waveshaper"
)

// Mode selects the distortion curve.
type Mode int

const (
	ModeNone Mode = iota
	ModeSoftClip
	ModeHardClip
	ModeSaturation
	ModeTape
	ModeTube
	ModeDiode
	ModeFuzz

	modeCount
)

var modeNames = [...]string{
	ModeNone:       "none",
	ModeSoftClip:   "soft-clip",
	ModeHardClip:   "hard-clip",
	ModeSaturation: "saturation",
	ModeTape:       "tape",
	ModeTube:       "tube",
	ModeDiode:      "diode",
	ModeFuzz:       "fuzz",
}

// Tape and tube flavours of the exponential saturation curve.
var (
	tapeCurve = waveshaper.Curve{Q: -0.5, K: 3}
	tubeCurve = waveshaper.Curve{Q: -0.2, K: 8}
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m >= 0 && m < modeCount }

// String returns the mode name.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode resolves a mode name as returned by String.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown distortion mode: %q", name)
}

// modeFromIndex maps the published mode control onto a Mode. Out of range
// values select ModeNone.
func modeFromIndex(i int) Mode {
	m := Mode(i)
	if !m.Valid() {
		return ModeNone
	}
	return m
}

// Shape applies the curve of m to x. ModeNone returns x.
func (m Mode) Shape(x, drive float64) float64 {
	switch m {
	case ModeNone:
		return x
	case ModeSoftClip:
		return waveshaper.SoftClip(x, drive)
	case ModeHardClip:
		return waveshaper.HardClip(x, drive)
	case ModeSaturation:
		return waveshaper.Saturate(x, drive)
	case ModeTape:
		return waveshaper.SaturateScale * tapeCurve.Apply(x*drive/waveshaper.UnityDrive)
	case ModeTube:
		return waveshaper.SaturateScale * tubeCurve.Apply(x*drive/waveshaper.UnityDrive)
	case ModeDiode:
		return waveshaper.Diode(x, drive)
	case ModeFuzz:
		return waveshaper.Fuzz(x, drive)
	default:
		return x
	}
}
