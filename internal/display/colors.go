package display

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ramonehamilton/cox-analytics/internal/config"
)

// ANSI colour codes used for deltas.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorOrange = "\033[38;5;208m"
)

// ColorEnabled decides whether output to f should be colourised for one of
// the config.Color* modes. Auto enables colour only when f is a terminal.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DiffColor grades a difference against the average.
//
// Time deltas where lower is better use four grades: 20s or more faster is
// cyan, any faster is green, under 10s slower is orange, otherwise red.
// Everything else is green when the delta goes the good way and red when not.
// Differences under one unit are left uncoloured.
func DiffColor(diff int, isTime, positiveIsGood bool) string {
	if diff > -1 && diff < 1 {
		return colorReset
	}

	if isTime && !positiveIsGood {
		switch {
		case diff <= -20:
			return colorCyan
		case diff < 0:
			return colorGreen
		case diff < 10:
			return colorOrange
		default:
			return colorRed
		}
	}

	good := diff < 0
	if positiveIsGood {
		good = diff > 0
	}
	if good {
		return colorGreen
	}
	return colorRed
}
