package cli

import (
	"github.com/amterp/kanboard/internal/tui"
	"github.com/amterp/ra"
)

func registerTui(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("tui")
	cmd.SetDescription("Open a local board session in the terminal")

	ctx.TuiUsed, _ = parent.RegisterCmd(cmd)
}

func runTui() {
	app := NewApp("", false)
	if err := tui.Run(app.Settings); err != nil {
		Fatal(err)
	}
}
