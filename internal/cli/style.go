package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/amterp/kanboard/internal/model"
)

// Terminal palette. Dark is used on dark backgrounds, Light on light ones.
var (
	colorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"}
	colorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"}
	colorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"}
	colorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	colorCardID  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"}
	colorLink    = lipgloss.AdaptiveColor{Dark: "#38bdf8", Light: "#0284c7"}
)

var (
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleCardID = lipgloss.NewStyle().Foreground(colorCardID)
	styleLink   = lipgloss.NewStyle().Foreground(colorLink)
	styleBold   = lipgloss.NewStyle().Bold(true)
)

// statusIcon pairs an outcome marker with its color.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

var (
	iconSuccess = statusIcon{"✓", lipgloss.NewStyle().Foreground(colorSuccess)}
	iconError   = statusIcon{"✗", lipgloss.NewStyle().Foreground(colorError)}
	iconWarning = statusIcon{"!", lipgloss.NewStyle().Foreground(colorWarning)}
	iconInfo    = statusIcon{"→", styleMuted}
)

func printStatus(w io.Writer, icon statusIcon, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", icon.style.Render(icon.glyph), fmt.Sprintf(format, args...))
}

// PrintSuccess reports a completed card operation on stdout.
func PrintSuccess(format string, args ...any) {
	printStatus(os.Stdout, iconSuccess, format, args...)
}

// PrintError reports a failure on stderr.
func PrintError(format string, args ...any) {
	printStatus(os.Stderr, iconError, format, args...)
}

// PrintWarning reports a recoverable problem, e.g. unreadable settings, on stderr.
func PrintWarning(format string, args ...any) {
	printStatus(os.Stderr, iconWarning, format, args...)
}

// PrintInfo reports a no-op outcome ("already in Done", "Cancelled").
func PrintInfo(format string, args ...any) {
	printStatus(os.Stdout, iconInfo, format, args...)
}

// RenderCardID renders a card id so it stands out in a line of text.
func RenderCardID(cardID string) string {
	return styleCardID.Render(cardID)
}

// RenderURL renders the server address.
func RenderURL(url string) string {
	return styleLink.Render(url)
}

func RenderMuted(text string) string {
	return styleMuted.Render(text)
}

func RenderBold(text string) string {
	return styleBold.Render(text)
}

// RenderColored renders text in a column or priority hex color.
// An empty color falls back to muted.
func RenderColored(text, hexColor string) string {
	if hexColor == "" {
		return styleMuted.Render(text)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(text)
}

// RenderColumn renders a column title in the column's color.
func RenderColumn(spec model.ColumnSpec) string {
	return RenderColored(spec.Title, spec.Color)
}

// RenderPriority renders a priority badge from model.PriorityColors,
// or "" when the priority is unset.
func RenderPriority(p model.Priority) string {
	if p == model.PriorityUnset {
		return ""
	}
	return RenderColored(p.String(), model.PriorityColor(p))
}

// ColorSwatch renders a small block in a column color, for `config`.
func ColorSwatch(hexColor string) string {
	return RenderColored("██", hexColor)
}

// DescriptionBox frames a card description under `show`.
func DescriptionBox(description string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1).
		Render(description)
}

// TitleBox frames a card title as the heading of `show`.
func TitleBox(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardID).
		Padding(0, 2).
		Bold(true).
		Render(title)
}

// LabelValue formats "label: value" with the label right-aligned to labelWidth.
func LabelValue(label, value string, labelWidth int) string {
	labelStyle := lipgloss.NewStyle().
		Width(labelWidth).
		Align(lipgloss.Right).
		Foreground(colorMuted)
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), value)
}
