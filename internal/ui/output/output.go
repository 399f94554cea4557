// Package output builds termenv outputs that honor NO_COLOR.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// fder is implemented by writers backed by a file descriptor.
type fder interface {
	Fd() uintptr
}

// Interactive reports whether w is a terminal. Writers without a file
// descriptor are treated as terminals so the environment decides.
func Interactive(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in an int
}

// ColorProfile returns Ascii when NO_COLOR is set or w is a file that is not a
// terminal, and the detected profile otherwise.
func ColorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" || !Interactive(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w. A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile(w)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
