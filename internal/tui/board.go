// Package tui is a terminal board for a local session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/inline"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/service"
	"github.com/amterp/kanboard/internal/store"
)

type boardMode int

const (
	modeNormal boardMode = iota
	modeDrag
	modeEdit
	modeNew
	modeConfirmDelete
)

// dragStep is how far one h/l keypress moves the dragged card, in cells.
const dragStep = columnWidth + 2

// BoardModel drives the board from the keyboard. Dragging goes through the
// same board.Drag the websocket clients use.
type BoardModel struct {
	cards      store.CardStore
	controller *board.Controller
	service    *service.CardService

	view         board.View
	selectedCol  int
	selectedCard int
	mode         boardMode

	drag     *board.Drag
	hoverCol int

	session *inline.Session
	input   textinput.Model

	width   int
	message string
	err     error
}

// NewBoardModel creates a board over cards. The controller must be built on
// the same store.
func NewBoardModel(cards store.CardStore, controller *board.Controller) BoardModel {
	input := textinput.New()
	input.CharLimit = 512

	return BoardModel{
		cards:      cards,
		controller: controller,
		service:    service.NewCardService(cards, controller),
		view:       controller.View(),
		drag:       controller.NewDrag(),
		input:      input,
	}
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil

		switch m.mode {
		case modeDrag:
			return m.updateDrag(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeNew:
			return m.updateNew(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		if m.selectedCol > 0 {
			m.selectedCol--
			m.clampCursor()
		}

	case "l", "right":
		if m.selectedCol < len(m.view.Columns)-1 {
			m.selectedCol++
			m.clampCursor()
		}

	case "j", "down":
		if m.selectedCard < len(m.currentCards())-1 {
			m.selectedCard++
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.selectedCard--
		}

	case " ":
		card, ok := m.currentCard()
		if !ok {
			return m, nil
		}
		if err := m.drag.Start(card.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.hoverCol = m.selectedCol
		m.mode = modeDrag

	case "n":
		m.input.SetValue("")
		m.input.Placeholder = "New card title"
		m.mode = modeNew
		cmd := m.input.Focus()
		return m, cmd

	case "e":
		return m.beginEdit(inline.FieldTitle)

	case "E":
		return m.beginEdit(inline.FieldDescription)

	case "p":
		card, ok := m.currentCard()
		if !ok {
			return m, nil
		}
		next := card.Priority.Next().String()
		if _, err := m.service.Edit(service.EditCardInput{ID: card.ID, Priority: &next}); err != nil {
			m.err = err
		}
		m.refresh()

	case "D":
		if _, ok := m.currentCard(); ok {
			m.mode = modeConfirmDelete
		}
	}

	return m, nil
}

func (m BoardModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.hoverCol > 0 {
			m.hoverCol--
			m.drag.Pointer(-dragStep, 0)
		}

	case "l", "right":
		if m.hoverCol < len(m.view.Columns)-1 {
			m.hoverCol++
			m.drag.Pointer(dragStep, 0)
		}

	case "enter", " ":
		result := m.drag.Release(m.view.DropTargets[m.hoverCol])
		m.mode = modeNormal
		m.refresh()
		switch {
		case !result.Found:
			m.message = "Card no longer exists"
		default:
			m.follow(result.CardID)
			m.message = fmt.Sprintf("Moved to %s", model.ColumnFor(m.controller.Columns(), result.Target).Title)
		}

	case "esc", "q":
		// Dropping over nothing leaves the card where it was.
		m.drag.Release("")
		m.mode = modeNormal
		m.message = "Drag cancelled"
	}

	return m, nil
}

func (m BoardModel) beginEdit(field inline.Field) (tea.Model, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	m.session = inline.Begin(m.cards, card, field)
	m.input.SetValue(m.session.Draft())
	m.input.Placeholder = field.String()
	m.input.CursorEnd()
	m.mode = modeEdit
	cmd := m.input.Focus()
	return m, cmd
}

func (m BoardModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.session.SetDraft(m.input.Value())
		outcome := m.session.Submit()
		m.finishEdit()
		switch outcome {
		case inline.Committed:
			m.message = fmt.Sprintf("Updated %s", m.session.Field())
		case inline.Reverted:
			m.message = fmt.Sprintf("Kept previous %s", m.session.Field())
		}
		return m, nil

	case "esc":
		m.session.Cancel()
		m.finishEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetDraft(m.input.Value())
	return m, cmd
}

func (m *BoardModel) finishEdit() {
	m.input.Blur()
	m.mode = modeNormal
	m.refresh()
}

func (m BoardModel) updateNew(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		status := m.view.Columns[m.selectedCol].Status.String()
		card, err := m.service.Add(service.AddCardInput{Title: m.input.Value(), Status: status})
		if err != nil {
			m.err = err
			return m, nil
		}
		m.input.Blur()
		m.mode = modeNormal
		m.refresh()
		m.follow(card.ID)
		m.message = "Card created"
		return m, nil

	case "esc":
		m.input.Blur()
		m.mode = modeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BoardModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if card, ok := m.currentCard(); ok {
			if err := m.service.Delete(card.ID); err != nil {
				m.err = err
			} else {
				m.message = fmt.Sprintf("Deleted %q", card.Title)
			}
		}
		m.mode = modeNormal
		m.refresh()

	case "n", "esc":
		m.mode = modeNormal
	}
	return m, nil
}

// refresh re-reads the derived board after a local mutation.
func (m *BoardModel) refresh() {
	m.view = m.controller.View()
	if m.selectedCol >= len(m.view.Columns) {
		m.selectedCol = max(0, len(m.view.Columns)-1)
	}
	m.clampCursor()
}

// follow moves the cursor onto cardID wherever it now lives.
func (m *BoardModel) follow(cardID string) {
	col, pos := m.view.Locate(cardID)
	if col < 0 {
		return
	}
	m.selectedCol = col
	m.selectedCard = pos
}

func (m *BoardModel) clampCursor() {
	n := len(m.currentCards())
	if m.selectedCard >= n {
		m.selectedCard = n - 1
	}
	if m.selectedCard < 0 {
		m.selectedCard = 0
	}
}

func (m BoardModel) currentCards() []model.Card {
	if m.selectedCol >= len(m.view.Columns) {
		return nil
	}
	return m.view.Columns[m.selectedCol].Cards
}

func (m BoardModel) currentCard() (model.Card, bool) {
	cards := m.currentCards()
	if m.selectedCard < 0 || m.selectedCard >= len(cards) {
		return model.Card{}, false
	}
	return cards[m.selectedCard], true
}

func (m BoardModel) View() string {
	columns := make([]string, 0, len(m.view.Columns))
	for i, col := range m.view.Columns {
		columns = append(columns, m.renderColumn(i, col))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")

	switch m.mode {
	case modeEdit, modeNew:
		b.WriteString(inputStyle.Render(m.input.View()))
		b.WriteString("\n")
	case modeConfirmDelete:
		if card, ok := m.currentCard(); ok {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %q? [y/n]", card.Title)))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.message != "" {
		b.WriteString(mutedStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString(m.helpLine())
	return b.String()
}

func (m BoardModel) renderColumn(index int, col board.Column) string {
	var b strings.Builder
	b.WriteString(colored(lipgloss.NewStyle().Bold(true).Render(col.Title), col.Color))
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" (%d)", len(col.Cards))))
	b.WriteString("\n")

	if len(col.Cards) == 0 {
		b.WriteString(mutedStyle.Render("no cards"))
	}
	for i, card := range col.Cards {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderCard(index, i, card))
	}

	style := columnStyle
	switch {
	case m.mode == modeDrag && index == m.hoverCol:
		style = dropColumnStyle
	case index == m.selectedCol:
		style = selectedColumnStyle
	}
	return style.Render(b.String())
}

func (m BoardModel) renderCard(colIndex, cardIndex int, card model.Card) string {
	text := card.Title
	if card.Priority != model.PriorityUnset {
		text += " " + colored("●", model.PriorityColor(card.Priority))
	}
	if card.Description != "" {
		text += "\n" + mutedStyle.Render(firstLine(card.Description))
	}

	style := cardStyle
	switch {
	case m.mode == modeDrag && card.ID == m.drag.ActiveID():
		style = draggedCardStyle
	case colIndex == m.selectedCol && cardIndex == m.selectedCard:
		style = selectedCardStyle
	}
	return style.Width(columnWidth - 2*columnPaddingHorz).Render(text)
}

func (m BoardModel) helpLine() string {
	var keys [][2]string
	switch m.mode {
	case modeDrag:
		keys = [][2]string{{"h/l", "hover"}, {"enter", "drop"}, {"esc", "cancel"}}
	case modeEdit, modeNew:
		keys = [][2]string{{"enter", "save"}, {"esc", "cancel"}}
	case modeConfirmDelete:
		keys = [][2]string{{"y", "delete"}, {"n", "keep"}}
	default:
		keys = [][2]string{
			{"hjkl", "move"}, {"space", "drag"}, {"n", "new"}, {"e/E", "edit"},
			{"p", "priority"}, {"D", "delete"}, {"q", "quit"},
		}
	}

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = helpKeyStyle.Render(k[0]) + " " + mutedStyle.Render(k[1])
	}
	return strings.Join(parts, "  ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
