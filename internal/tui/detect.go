package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are rendered on the current terminal.
type OutputMode int

const (
	// OutputModePlain is uncoloured text, used when stdout is not a terminal.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is coloured, non-interactive output.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

const fallbackWidth = 80

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DetectOutputMode picks the richest mode the terminal supports. forcePlain
// and noColor come from flags; noInteractive disables the TUI but keeps colour.
func DetectOutputMode(forcePlain, noColor, noInteractive bool) OutputMode {
	if forcePlain || !IsTTY() {
		return OutputModePlain
	}
	if noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if noInteractive || os.Getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or 80 when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}
