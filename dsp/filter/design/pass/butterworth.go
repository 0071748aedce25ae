package pass

import (
	"math"

	"github.com/cwbudde/algo-drive/dsp/filter/biquad"
)

// Sections returns the number of biquad sections of an order-n cascade.
func Sections(order int) int {
	if order <= 0 {
		return 0
	}
	return (order + 1) / 2
}

// LowpassRBJ designs a cookbook lowpass biquad at freq (Hz) with quality
// factor q. Invalid frequencies yield zero coefficients.
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * normalizedQ(q))

	b1 := 1 - cw
	b0 := b1 / 2

	return normalizeBiquad(b0, b1, b0, 1+alpha, -2*cw, 1-alpha)
}

// HighpassRBJ designs a cookbook highpass biquad at freq (Hz) with quality
// factor q. Invalid frequencies yield zero coefficients.
func HighpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * normalizedQ(q))

	b0 := (1 + cw) / 2

	return normalizeBiquad(b0, -(1 + cw), b0, 1+alpha, -2*cw, 1-alpha)
}

// ButterworthLP designs a lowpass Butterworth cascade.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}

	return ButterworthLPInto(make([]biquad.Coefficients, Sections(order)), freq, order, sampleRate)
}

// ButterworthHP designs a highpass Butterworth cascade.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}

	return ButterworthHPInto(make([]biquad.Coefficients, Sections(order)), freq, order, sampleRate)
}

// ButterworthLPInto writes the lowpass cascade into dst and returns the
// written prefix. dst must hold at least Sections(order) entries; otherwise
// nothing is written.
func ButterworthLPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworthInto(dst, freq, order, sampleRate, LowpassRBJ, firstOrderLP)
}

// ButterworthHPInto writes the highpass cascade into dst; see ButterworthLPInto.
func ButterworthHPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworthInto(dst, freq, order, sampleRate, HighpassRBJ, firstOrderHP)
}

func butterworthInto(
	dst []biquad.Coefficients,
	freq float64,
	order int,
	sampleRate float64,
	second func(freq, q, sampleRate float64) biquad.Coefficients,
	first func(freq, sampleRate float64) biquad.Coefficients,
) []biquad.Coefficients {
	n := Sections(order)
	if n == 0 || len(dst) < n {
		return dst[:0]
	}

	dst = dst[:n]

	k := 0
	for i := order/2 - 1; i >= 0; i-- {
		dst[k] = second(freq, butterworthQ(order, i), sampleRate)
		k++
	}

	if order%2 != 0 {
		dst[k] = first(freq, sampleRate)
	}

	return dst
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	norm := 1 / (1 + k)

	return biquad.Coefficients{B0: k * norm, B1: k * norm, A1: (k - 1) * norm}
}

func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	norm := 1 / (1 + k)

	return biquad.Coefficients{B0: norm, B1: -norm, A1: (k - 1) * norm}
}

// bilinearK computes the frequency warping factor tan(π*freq/sampleRate).
func bilinearK(freq, sampleRate float64) (float64, bool) {
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return 1 / math.Sqrt2
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
