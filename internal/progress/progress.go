// Package progress handles terminal-aware output: whether to animate,
// whether to colorize, and a spinner that counts finished probes.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminalFunc is the function used to check if a file descriptor is a terminal.
// It can be overridden for testing.
var IsTerminalFunc = term.IsTerminal

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return IsTerminalFunc(int(f.Fd()))
}

// ColorEnabled reports whether output written to w should carry ANSI
// colors. NO_COLOR and TERM=dumb disable color, as does forceOff.
func ColorEnabled(w io.Writer, forceOff bool) bool {
	if forceOff {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(w)
}

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
)

// Green wraps s in green when color is on.
func Green(s string, color bool) string {
	if !color {
		return s
	}
	return ansiGreen + s + ansiReset
}

// Red wraps s in red when color is on.
func Red(s string, color bool) string {
	if !color {
		return s
	}
	return ansiRed + s + ansiReset
}
