// Package color names the terminal colors used by the CLI.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")
)
