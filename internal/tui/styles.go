package tui

import "github.com/charmbracelet/lipgloss"

const (
	columnWidth       = 34
	columnPaddingHorz = 1
)

var (
	colorBorder  = lipgloss.AdaptiveColor{Dark: "#4b5563", Light: "#d1d5db"}
	colorFocused = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"}
	colorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	colorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"}
	colorSurface = lipgloss.AdaptiveColor{Dark: "#1f2937", Light: "#f3f4f6"}

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, columnPaddingHorz).
			Width(columnWidth)

	selectedColumnStyle = columnStyle.
				BorderForeground(colorFocused)

	// A hovered column while dragging gets a heavier border.
	dropColumnStyle = columnStyle.
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorFocused)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBorder).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(colorFocused).
				Background(colorSurface).
				Bold(true)

	draggedCardStyle = cardStyle.
				BorderForeground(colorFocused).
				Italic(true).
				Faint(true)

	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	inputStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocused).Padding(0, 1)
	helpKeyStyle = lipgloss.NewStyle().Bold(true)
)

func colored(text, hex string) string {
	if hex == "" {
		return mutedStyle.Render(text)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(text)
}
