package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-drive/dsp/buffer"
	"github.com/cwbudde/algo-drive/dsp/engine"
	"github.com/cwbudde/algo-drive/dsp/spectrum"
)

const harmonicCount = 5

// renderOffline runs opt.seconds of test tone through e and reports the
// result.
func renderOffline(w io.Writer, e *engine.Engine, opt options) error {
	b, err := buffer.NewBlock(opt.channels, opt.block)
	if err != nil {
		return err
	}

	analyzer, err := spectrum.NewAnalyzer(spectrum.WithFFTSize(opt.fftSize))
	if err != nil {
		return err
	}

	osc := newTone(opt.freq, opt.rate, opt.amplitude)
	total := int(math.Ceil(opt.seconds * opt.rate))
	tail := make([]float64, 0, opt.fftSize)

	for done := 0; done < total; done += b.Len() {
		b.SetLen(min(opt.block, total-done))
		osc.fill(b)
		e.Process(b)

		tail = append(tail, b.Channel(0)...)
		if len(tail) > opt.fftSize {
			tail = tail[len(tail)-opt.fftSize:]
		}
	}

	var frame spectrum.Frame
	if len(tail) > 0 {
		if _, err := analyzer.ProduceFrame(tail); err != nil {
			return err
		}
		analyzer.PullFrame(&frame)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tINPUT dB\tOUTPUT dB\tDROPPED")
	for ch := range e.Channels() {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%d\n", ch, e.InputLevel(ch), e.OutputLevel(ch), e.Dropped(ch))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HARMONIC\tFREQ Hz\tLEVEL dB")
	for _, h := range harmonicLevels(frame, opt.freq, opt.rate, opt.fftSize) {
		fmt.Fprintf(tw, "%d\t%.1f\t%.2f\n", h.order, h.freq, h.levelDB)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	path, ok := e.PollSpectrumPath(0, spectrum.Bounds{Width: 1, Height: 1})
	if !ok {
		return nil
	}

	width, height := terminalSize()
	for _, line := range plotPath(path, width, height) {
		fmt.Fprintln(w, line)
	}

	return nil
}

type harmonic struct {
	order   int
	freq    float64
	levelDB float64
}

// harmonicLevels reads the strongest bin around each multiple of fundamental.
func harmonicLevels(frame spectrum.Frame, fundamental, sampleRate float64, fftSize int) []harmonic {
	var out []harmonic
	binHz := sampleRate / float64(fftSize)

	for order := 1; order <= harmonicCount; order++ {
		f := fundamental * float64(order)
		centre := int(math.Round(f / binHz))
		if centre >= len(frame) {
			break
		}

		level := frame[centre]
		for k := max(centre-2, 0); k <= min(centre+2, len(frame)-1); k++ {
			level = math.Max(level, frame[k])
		}

		out = append(out, harmonic{order: order, freq: f, levelDB: level})
	}

	return out
}
