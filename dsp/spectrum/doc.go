// Package spectrum turns accumulated sample blocks into decibel magnitude
// frames and maps those frames to drawable paths.
//
// The pipeline is split into three single-threaded stages connected through
// buffer.Ring queues: an Analyzer windows and transforms blocks into Frames,
// a PathGenerator maps Frames into pixel-space Paths, and a PathProducer runs
// both for one channel on behalf of a polling observer.
package spectrum
