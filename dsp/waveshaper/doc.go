// Package waveshaper provides stateless nonlinear transfer functions used by
// the distortion stage.
//
// Every curve has the form f(x, drive) and is pure: the same inputs always
// produce the same output bits. Each curve carries a fixed output scale that
// keeps the perceived loudness of the algorithms roughly comparable:
//
//   - SoftClip: cubic soft clipper, scaled by 0.5.
//   - HardClip: clamp followed by cubic edge softening, unscaled.
//   - Saturate: shifted exponential saturation, scaled by 0.8.
//   - Diode: atan of a diode-law exponential, scaled by 0.3.
//   - Fuzz: exponential soft clip with half-wave rectification, scaled by 0.8.
//   - Bitcrush: placeholder that returns silence.
package waveshaper
