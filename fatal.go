package bootfb

import (
	"errors"

	"github.com/BeatGlow/bootfb/pixel"
)

// Errors
var (
	ErrNoGlyph = errors.New("bootfb: no glyph")
)

// SpinHalt never returns. It is the default halt routine.
func SpinHalt() {
	for {
	}
}

// fatal handles an unrecoverable drawing error. The pixel format is downgraded before
// anything else runs, so a halt routine that draws a diagnostic does not fail again.
//
// If the halt routine returns, drawing continues with the fallback format.
func (s *Screen) fatal(err error) {
	if !s.fb.Info().Format.Supported() {
		s.fb.ResetFormat()
		s.log.Error("bootfb: pixel format reset", "format", pixel.RGB)
	}
	s.log.Error("bootfb: fatal error, halting", "err", err)
	s.halt()
}
