// Package buffer provides the preallocated containers shared between the
// processing thread and its observers.
//
// [Ring] is a fixed-capacity single-producer/single-consumer queue: Push and
// Pull are O(1), never block and never allocate once the ring is built.
// A full ring drops the newest item. [Block] is a multi-channel sample
// buffer whose length may vary per call up to the capacity it was built with.
package buffer
