// Command drivesim runs a test tone through the distortion engine.
//
// Usage:
//
//	drivesim [flags]
//
// By default it renders a few seconds offline and prints input/output levels,
// the level of the first harmonics and a terminal spectrum of the output.
// With -play the engine runs inside the audio device callback and the
// observer redraws the meters at 60 Hz until interrupted.
//
// Examples:
//
//	drivesim -mode hard-clip -drive 10
//	drivesim -mode tube -drive 6 -mix 50 -high-cut 6000
//	drivesim -play -mode fuzz -freq 110
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/engine"
	"github.com/cwbudde/algo-drive/dsp/param"
)

type options struct {
	mode     string
	controls map[param.ID]float64
	bypass   string

	freq      float64
	amplitude float64
	rate      float64
	block     int
	channels  int
	fftSize   int
	seconds   float64

	play     bool
	duration time.Duration
}

func main() {
	var opt options
	var drive, mix, inGain, outGain, lowCut, highCut float64

	flag.StringVar(&opt.mode, "mode", engine.ModeHardClip.String(), "distortion mode ("+modeList()+")")
	flag.Float64Var(&drive, "drive", 5, "drive 0..20 in steps of 0.5")
	flag.Float64Var(&mix, "mix", 100, "dry/wet mix in percent")
	flag.Float64Var(&inGain, "in-gain", 0, "input gain in dB")
	flag.Float64Var(&outGain, "out-gain", 0, "output gain in dB")
	flag.Float64Var(&lowCut, "low-cut", 20, "low cut frequency in Hz")
	flag.Float64Var(&highCut, "high-cut", 20000, "high cut frequency in Hz")
	flag.StringVar(&opt.bypass, "bypass", "", "comma separated stages to bypass (input,distortion,low-cut,high-cut,output,all)")
	flag.Float64Var(&opt.freq, "freq", 220, "test tone frequency in Hz")
	flag.Float64Var(&opt.amplitude, "amp", 0.8, "test tone peak amplitude")
	flag.Float64Var(&opt.rate, "rate", 44100, "sample rate in Hz")
	flag.IntVar(&opt.block, "block", 512, "processing block size")
	flag.IntVar(&opt.channels, "channels", 2, "channel count (1 or 2)")
	flag.IntVar(&opt.fftSize, "fft", 8192, "spectrum FFT size")
	flag.Float64Var(&opt.seconds, "seconds", 2, "offline render length in seconds")
	flag.BoolVar(&opt.play, "play", false, "play through the default audio device")
	flag.DurationVar(&opt.duration, "duration", 0, "stop live playback after this long (0 runs until interrupted)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: drivesim [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a test tone through the distortion engine.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  drivesim -mode hard-clip -drive 10\n")
		fmt.Fprintf(os.Stderr, "  drivesim -mode tube -drive 6 -mix 50 -high-cut 6000\n")
		fmt.Fprintf(os.Stderr, "  drivesim -play -mode fuzz -freq 110\n")
	}
	flag.Parse()

	opt.controls = map[param.ID]float64{
		param.IDDrive:      drive,
		param.IDMix:        mix,
		param.IDInputGain:  inGain,
		param.IDOutputGain: outGain,
		param.IDLowCut:     lowCut,
		param.IDHighCut:    highCut,
	}

	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opt options) error {
	store, err := buildStore(opt)
	if err != nil {
		return err
	}

	e, err := engine.New(store, engine.WithFFTSize(opt.fftSize))
	if err != nil {
		return err
	}

	proc := core.ProcessorConfig{SampleRate: opt.rate, BlockSize: opt.block, Channels: opt.channels}
	if err := e.Prepare(proc); err != nil {
		return err
	}

	if !opt.play {
		return renderOffline(os.Stdout, e, opt)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opt.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.duration)
		defer cancel()
	}

	return runLive(ctx, e, opt)
}

// buildStore publishes the command line controls.
func buildStore(opt options) (*param.Store, error) {
	mode, err := engine.ParseMode(opt.mode)
	if err != nil {
		return nil, err
	}

	store := param.NewStore()
	if err := store.Set(param.IDMode, float64(mode)); err != nil {
		return nil, err
	}

	for id, v := range opt.controls {
		if err := store.Set(id, v); err != nil {
			return nil, err
		}
	}

	for _, name := range strings.Split(opt.bypass, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		ids, ok := bypassIDs[name]
		if !ok {
			return nil, fmt.Errorf("unknown stage to bypass: %q", name)
		}

		for _, id := range ids {
			if err := store.SetBool(id, true); err != nil {
				return nil, err
			}
		}
	}

	return store, nil
}

var bypassIDs = map[string][]param.ID{
	"input":      {param.IDInputGainBypass},
	"distortion": {param.IDDistortionBypass},
	"low-cut":    {param.IDLowCutBypass},
	"high-cut":   {param.IDHighCutBypass},
	"output":     {param.IDOutputGainBypass},
	"all": {
		param.IDInputGainBypass, param.IDDistortionBypass, param.IDLowCutBypass,
		param.IDHighCutBypass, param.IDOutputGainBypass,
	},
}

func modeList() string {
	var names []string
	for m := engine.ModeNone; m.Valid(); m++ {
		names = append(names, m.String())
	}

	return strings.Join(names, ", ")
}
