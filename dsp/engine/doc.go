// Package engine runs the distortion signal path: input gain, waveshaping
// with dry/wet mix, low-cut and high-cut filters, output gain, level meters
// and per-channel spectrum accumulation.
//
// Engine.Process is the real-time entry point. After Prepare it never
// allocates, locks or blocks. Everything the observer reads (levels,
// accumulated blocks) crosses goroutines through atomics or buffer.Ring
// queues, and Observer drains them on its own ticker.
package engine
