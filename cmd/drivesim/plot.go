package main

import (
	"os"

	"golang.org/x/term"

	"github.com/cwbudde/algo-drive/dsp/spectrum"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
	maxPlotHeight = 24
)

// terminalSize returns the plot area for stdout, falling back to 80x20 when
// stdout is not a terminal.
func terminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth, defaultHeight
	}

	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}

	return w, min(max(h/2, 4), maxPlotHeight)
}

// plotPath rasterizes a path mapped into the unit square as columns of '#'
// filled from the bottom up to the path.
func plotPath(path spectrum.Path, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	// top[x] is the highest row reached in column x; height means empty.
	top := make([]int, width)
	for x := range top {
		top[x] = height
	}

	for _, p := range path {
		if p.X < 0 || p.X >= 1 {
			continue
		}

		x := int(p.X * float64(width))
		y := min(max(int(p.Y*float64(height)), 0), height-1)
		if y < top[x] {
			top[x] = y
		}
	}

	lines := make([]string, height)
	row := make([]byte, width)
	for y := range height {
		for x := range row {
			row[x] = ' '
			if top[x] <= y {
				row[x] = '#'
			}
		}
		lines[y] = string(row)
	}

	return lines
}
