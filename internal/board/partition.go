package board

import "github.com/amterp/kanboard/internal/model"

// Column is one status partition of the board, ready to render.
type Column struct {
	Status model.Status `json:"status"`
	Title  string       `json:"title"`
	Color  string       `json:"color"`
	Cards  []model.Card `json:"cards"`
}

// View is the whole board derived from one snapshot.
type View struct {
	Revision    uint64   `json:"revision"`
	Columns     []Column `json:"columns"`
	DropTargets []string `json:"drop_targets"`
}

// Partition splits cards into one column per spec. Within a column, cards
// keep their order from the collection. Every valid card lands in exactly
// one column; a status with no spec gets no column.
func Partition(snap model.Snapshot, specs []model.ColumnSpec) View {
	columns := make([]Column, len(specs))
	index := make(map[model.Status]int, len(specs))
	for i, spec := range specs {
		columns[i] = Column{
			Status: spec.Status,
			Title:  spec.Title,
			Color:  spec.Color,
			Cards:  []model.Card{},
		}
		index[spec.Status] = i
	}

	for _, card := range snap.Cards {
		if i, ok := index[card.Status]; ok {
			columns[i].Cards = append(columns[i].Cards, card)
		}
	}

	return View{
		Revision:    snap.Revision,
		Columns:     columns,
		DropTargets: DropTargets(specs),
	}
}

// Column returns the partition for status.
func (v View) Column(status model.Status) (Column, bool) {
	for _, col := range v.Columns {
		if col.Status == status {
			return col, true
		}
	}
	return Column{}, false
}

// Locate returns the column index and position of a card, or -1, -1.
func (v View) Locate(cardID string) (int, int) {
	for ci, col := range v.Columns {
		for pi, card := range col.Cards {
			if card.ID == cardID {
				return ci, pi
			}
		}
	}
	return -1, -1
}

// DropTargets names one drop target per column, using the status wire form.
func DropTargets(specs []model.ColumnSpec) []string {
	targets := make([]string, len(specs))
	for i, spec := range specs {
		targets[i] = spec.Status.String()
	}
	return targets
}

// ParseDropTarget maps a drop target name back to its status.
// Unknown names are not targets.
func ParseDropTarget(name string) (model.Status, bool) {
	status, err := model.ParseStatus(name)
	if err != nil {
		return 0, false
	}
	return status, true
}
