package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorBlue  = lipgloss.Color("75")  // Light blue - links
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

func successf(format string, args ...any) string {
	return styleSuccess.Render("✓") + " " + fmt.Sprintf(format, args...)
}
