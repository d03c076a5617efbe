package main

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// diagnosticsWriter returns a writer over stderr that keeps ANSI color
// codes working on a Windows console (mattn/go-colorable), falling
// back to the raw file when color can't be determined — mirroring the
// IGSON2-berith_log console package's writer choice for its own
// diagnostic output.
func diagnosticsWriter() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return colorable.NewColorable(os.Stderr)
	}
	return colorable.NewNonColorable(os.Stderr)
}
