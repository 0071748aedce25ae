// Package pass designs lowpass and highpass biquad coefficients.
//
// Butterworth cascades are built from RBJ cookbook sections whose quality
// factors follow the Butterworth pole angles; odd orders end with a
// first-order section (B2 = A2 = 0). The Into variants write into a caller
// slice and never allocate, so they can run on a real-time thread.
package pass
