package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
)

// Run opens a fresh in-memory session and blocks until the user quits.
func Run(settings *model.Settings) error {
	var seed []model.Card
	if !settings.Server.NoSeed {
		seed = model.SeedCards()
	}

	cards := store.NewCardStore(seed)
	controller := board.NewController(cards, settings.ColumnSpecs())
	defer controller.Close()

	_, err := tea.NewProgram(NewBoardModel(cards, controller), tea.WithAltScreen()).Run()
	return err
}
