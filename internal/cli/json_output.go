package cli

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/model"
)

// cardJson represents a card with its column title resolved for JSON output.
//
// SYNC WARNING: This struct must stay in sync with model.Card fields.
// If you add fields to model.Card, add them here too. See TestCardJsonFieldSync.
type cardJson struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    model.Priority `json:"priority,omitempty"`
	Status      model.Status   `json:"status"`
	Column      string         `json:"column"`
}

func cardToJson(c model.Card, specs []model.ColumnSpec) cardJson {
	return cardJson{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Priority:    c.Priority,
		Status:      c.Status,
		Column:      model.ColumnFor(specs, c.Status).Title,
	}
}

// CardOutput wraps a single card for JSON output.
type CardOutput struct {
	Card cardJson `json:"card"`
}

// NewCardOutput creates a CardOutput from a model.Card.
func NewCardOutput(card model.Card, specs []model.ColumnSpec) CardOutput {
	return CardOutput{Card: cardToJson(card, specs)}
}

// ListOutput wraps a list of cards for JSON output.
type ListOutput struct {
	Cards []cardJson `json:"cards"`
}

// NewListOutput creates a ListOutput from a slice of model.Card.
// Always returns an empty array (not null) when there are no cards.
func NewListOutput(cards []model.Card, specs []model.ColumnSpec) ListOutput {
	result := make([]cardJson, 0, len(cards))
	for _, c := range cards {
		result = append(result, cardToJson(c, specs))
	}
	return ListOutput{Cards: result}
}

// BoardOutput wraps the partitioned board for JSON output.
type BoardOutput struct {
	Revision uint64       `json:"revision"`
	Columns  []ColumnInfo `json:"columns"`
}

// ColumnInfo represents column data for JSON output.
type ColumnInfo struct {
	Status    model.Status `json:"status"`
	Title     string       `json:"title"`
	Color     string       `json:"color"`
	CardCount int          `json:"card_count"`
	Cards     []cardJson   `json:"cards"`
}

// NewBoardOutput flattens a board view for JSON output.
// Always returns empty arrays (not null) for empty columns.
func NewBoardOutput(view board.View) BoardOutput {
	specs := make([]model.ColumnSpec, 0, len(view.Columns))
	for _, col := range view.Columns {
		specs = append(specs, model.ColumnSpec{Status: col.Status, Title: col.Title, Color: col.Color})
	}

	columns := make([]ColumnInfo, 0, len(view.Columns))
	for _, col := range view.Columns {
		columns = append(columns, ColumnInfo{
			Status:    col.Status,
			Title:     col.Title,
			Color:     col.Color,
			CardCount: len(col.Cards),
			Cards:     NewListOutput(col.Cards, specs).Cards,
		})
	}
	return BoardOutput{Revision: view.Revision, Columns: columns}
}

// ConfigOutput describes the effective settings for JSON output.
type ConfigOutput struct {
	Path    string               `json:"path"`
	Schema  string               `json:"schema"`
	Server  model.ServerSettings `json:"server"`
	Log     model.LogSettings    `json:"log"`
	Drag    model.DragSettings   `json:"drag"`
	Columns []model.ColumnSpec   `json:"columns"`
	Unknown []string             `json:"unknown_columns,omitempty"`
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
