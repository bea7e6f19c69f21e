package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor reports whether CLI output should be colorized.
// Honors NO_COLOR (https://no-color.org) and CLICOLOR/CLICOLOR_FORCE
// (https://bixense.com/clicolors/): NO_COLOR always disables, then
// CLICOLOR_FORCE enables even without a TTY, then CLICOLOR=0 disables.
// With no overrides set, color follows the TTY check.
func ShouldUseColor() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}

// ShouldUseEmoji reports whether output should include unicode status icons.
// TEXPACK_NO_EMOJI disables them for terminals with poor glyph support.
func ShouldUseEmoji() bool {
	if os.Getenv("TEXPACK_NO_EMOJI") != "" {
		return false
	}
	return IsTerminal()
}

// DisableColor forces plain output for the rest of the process.
// Backs the --no-color flag.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
