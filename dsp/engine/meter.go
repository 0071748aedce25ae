package engine

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drive/dsp/core"
)

// DefaultMeterFloorDB is the level reported for silence.
const DefaultMeterFloorDB = -100.0

// Meter publishes the RMS level of the last block per channel. Update runs
// on the processing goroutine and Level may be called from any goroutine.
type Meter struct {
	floorDB float64
	levels  []atomic.Uint64
}

// NewMeter returns a meter for channels, reading floorDB until updated.
func NewMeter(channels int, floorDB float64) *Meter {
	m := &Meter{floorDB: floorDB, levels: make([]atomic.Uint64, channels)}
	for ch := range m.levels {
		m.levels[ch].Store(math.Float64bits(floorDB))
	}

	return m
}

// Update measures samples and publishes the level of ch.
func (m *Meter) Update(ch int, samples []float64) {
	if ch < 0 || ch >= len(m.levels) {
		return
	}

	db := m.floorDB
	if len(samples) > 0 {
		rms := math.Sqrt(vecmath.DotProduct(samples, samples) / float64(len(samples)))
		db = core.GainToDB(rms, m.floorDB)
	}

	m.levels[ch].Store(math.Float64bits(db))
}

// Level returns the last published RMS level of ch in dB. Unknown channels
// read the floor.
func (m *Meter) Level(ch int) float64 {
	if ch < 0 || ch >= len(m.levels) {
		return m.floorDB
	}

	return math.Float64frombits(m.levels[ch].Load())
}

// Reset publishes the floor for every channel.
func (m *Meter) Reset() {
	for ch := range m.levels {
		m.levels[ch].Store(math.Float64bits(m.floorDB))
	}
}
