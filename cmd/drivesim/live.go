//go:build !headless

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-drive/dsp/engine"
	"github.com/cwbudde/algo-drive/dsp/spectrum"
)

func runLive(ctx context.Context, e *engine.Engine, opt options) error {
	src, err := newStreamer(e, opt)
	if err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(opt.rate),
		ChannelCount: opt.channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(src)
	player.Play()
	defer player.Close()

	meters := &meterLine{out: os.Stderr}
	obs, err := engine.NewObserver(e, meters, spectrum.Bounds{Width: 1, Height: 1}, engine.DefaultRefreshInterval)
	if err != nil {
		return err
	}

	err = obs.Run(ctx)
	fmt.Fprintln(os.Stderr)

	if ctx.Err() != nil {
		return nil
	}

	return err
}
