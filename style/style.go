// Package style wraps lipgloss into plain string transformers for CLI output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg renders its argument in foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)
