package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/amterp/kanboard/internal/model"
)

func TestRenderPriority_UnsetIsBlank(t *testing.T) {
	if got := RenderPriority(model.PriorityUnset); got != "" {
		t.Errorf("expected empty badge, got %q", got)
	}
	for _, p := range model.Priorities {
		if got := RenderPriority(p); !strings.Contains(got, p.String()) {
			t.Errorf("badge for %v should mention the level, got %q", p, got)
		}
	}
}

func TestRenderColumn_UsesTitle(t *testing.T) {
	spec := model.ColumnFor(model.DefaultColumns(), model.StatusInProgress)
	if got := RenderColumn(spec); !strings.Contains(got, "In Progress") {
		t.Errorf("got %q", got)
	}
	if got := RenderColored("x", ""); !strings.Contains(got, "x") {
		t.Errorf("empty color should still render text, got %q", got)
	}
}

func TestPrintStatus_FormatsMessage(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, iconSuccess, "Moved %s to %s", "abc", "Done")

	out := buf.String()
	if !strings.Contains(out, "✓") || !strings.HasSuffix(out, "Moved abc to Done\n") {
		t.Errorf("got %q", out)
	}
}

func TestLabelValue_PadsLabel(t *testing.T) {
	got := LabelValue("ID", "abc", 8)
	if !strings.Contains(got, "     ID: abc") {
		t.Errorf("got %q", got)
	}
}
