package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/engine"
)

const bytesPerSample = 4

// streamer adapts the engine to oto's pull model: the device goroutine calls
// Read, which is the real-time processing context.
type streamer struct {
	engine *engine.Engine
	osc    *tone
	block  *buffer.Block
	frames []float32
}

func newStreamer(e *engine.Engine, opt options) (*streamer, error) {
	b, err := buffer.NewBlock(opt.channels, opt.block)
	if err != nil {
		return nil, err
	}

	return &streamer{
		engine: e,
		osc:    newTone(opt.freq, opt.rate, opt.amplitude),
		block:  b,
		frames: make([]float32, opt.block*opt.channels),
	}, nil
}

// Read renders whole frames into p as little-endian float32.
func (s *streamer) Read(p []byte) (int, error) {
	channels := s.block.Channels()
	frameBytes := bytesPerSample * channels
	written := 0

	for len(p)-written >= frameBytes {
		n := min((len(p)-written)/frameBytes, s.block.Cap())
		s.block.SetLen(n)
		s.osc.fill(s.block)
		s.engine.Process(s.block)
		s.block.WriteInterleaved(s.frames)

		for _, v := range s.frames[:n*channels] {
			binary.LittleEndian.PutUint32(p[written:], math.Float32bits(v))
			written += bytesPerSample
		}
	}

	return written, nil
}

// meterLine redraws input/output levels on one terminal line.
type meterLine struct {
	out io.Writer
}

func (m *meterLine) Render(v *engine.View) {
	fmt.Fprint(m.out, "\r")
	for ch := range v.InputDB {
		fmt.Fprintf(m.out, "ch%d in %7.2f dB  out %7.2f dB   ", ch, v.InputDB[ch], v.OutputDB[ch])
	}
}
