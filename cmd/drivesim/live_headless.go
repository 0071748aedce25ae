//go:build headless

package main

import (
	"context"
	"errors"

	"github.com/cwbudde/algo-drive/dsp/engine"
)

func runLive(context.Context, *engine.Engine, options) error {
	return errors.New("live playback is not available in headless builds")
}
