package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const columnWidth = 32

// renderCardLine renders "id  title  priority" for list output.
func renderCardLine(c model.Card) string {
	line := fmt.Sprintf("%s  %s", RenderCardID(c.ID), c.Title)
	if badge := RenderPriority(c.Priority); badge != "" {
		line += "  " + badge
	}
	return line
}

// renderColumnHeader renders "Title (n)" in the column's color.
func renderColumnHeader(col board.Column) string {
	header := RenderColored(RenderBold(col.Title), col.Color)
	return fmt.Sprintf("%s %s", header, RenderMuted(fmt.Sprintf("(%d)", len(col.Cards))))
}

// renderBoard lays the columns out side by side.
func renderBoard(view board.View) string {
	boxes := make([]string, 0, len(view.Columns))
	for _, col := range view.Columns {
		var b strings.Builder
		b.WriteString(renderColumnHeader(col))
		b.WriteString("\n")
		if len(col.Cards) == 0 {
			b.WriteString(RenderMuted("no cards"))
		}
		for i, c := range col.Cards {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderCardLine(c))
		}
		style := lipgloss.NewStyle().
			Width(columnWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(col.Color)).
			Padding(0, 1)
		boxes = append(boxes, style.Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
