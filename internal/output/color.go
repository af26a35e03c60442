package output

import (
	"os"

	"github.com/xivtools/xivsplit/internal/netlog"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ShouldColorize determines if output should be colorized based on mode and
// TTY detection.
func ShouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// ColorizeEvent applies a color to a rendered watch event based on what the
// underlying line means: zone changes cyan, fight starts bold, victories
// green, wipes and deaths red, everything else unstyled.
func ColorizeEvent(line netlog.Line, text string) string {
	switch {
	case line.IsZoneChange():
		return colorCyan + text + colorReset
	case line.IsFightStart():
		return colorBold + text + colorReset
	case line.IsVictory():
		return colorGreen + text + colorReset
	case line.IsWipe(), line.Code == netlog.CodeDeath:
		return colorRed + text + colorReset
	case line.Code == netlog.CodeError:
		return colorYellow + text + colorReset
	default:
		return text
	}
}
