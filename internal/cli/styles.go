package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	barFull      = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	barEmpty     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func Success(msg string) string { return successStyle.Render("✓ " + msg) }
func Warning(msg string) string { return warningStyle.Render("⚠ " + msg) }
func Muted(msg string) string   { return mutedStyle.Render(msg) }
func Heading(msg string) string { return headingStyle.Render(msg) }

// Bar renders a fixed-width progress bar for percent in [0,100].
func Bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return barFull.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", percent)
}
