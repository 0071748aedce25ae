// Package param holds the control surface read by the processing thread.
//
// A Store publishes every control in its own atomic slot so that any thread
// may write while the processing thread takes a Snapshot once per block
// without locking. Ramp turns the block-rate targets of a snapshot into
// per-sample values that move linearly over a fixed transition time.
package param
