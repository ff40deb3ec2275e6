package cli

import (
	"strings"
	"testing"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/model"
)

func TestRenderBoard_ShowsEveryColumnAndCard(t *testing.T) {
	view := board.Partition(model.Snapshot{Cards: model.SeedCards()}, model.DefaultColumns())
	out := renderBoard(view)

	for _, want := range []string{"To Do", "In Progress", "Done", "Update documentation", "Setup project"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered board missing %q:\n%s", want, out)
		}
	}
}

func TestRenderBoard_EmptyColumn(t *testing.T) {
	view := board.Partition(model.Snapshot{}, model.DefaultColumns())
	if out := renderBoard(view); !strings.Contains(out, "no cards") {
		t.Errorf("expected placeholder for empty columns:\n%s", out)
	}
}
