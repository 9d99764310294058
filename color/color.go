// Package color defines the terminal palette shared by the CLI output and
// the picker.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color value (ANSI index or hex) as a lipgloss.Color.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI base colors. Indexed rather than hex so the user's terminal theme
// decides the exact shade.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Black  = New("8")
)

// Bright ANSI variants.
var (
	HiRed    = New("9")
	HiGreen  = New("10")
	HiYellow = New("11")
	HiBlue   = New("12")
	HiPurple = New("13")
	HiCyan   = New("14")
	HiWhite  = New("15")
	HiBlack  = New("16")
)

// Fixed accent shades, independent of the terminal theme.
var (
	Orange = New("#ffb703")
	Gray   = New("#808080")
)
