// Package biquad provides second-order IIR filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections can be cascaded
// via [Chain]. Replacing coefficients never touches the delay line, so a
// filter can be retuned between blocks while its sample history carries over.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
