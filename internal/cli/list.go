package cli

import (
	"context"
	"fmt"

	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/ra"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List cards, grouped by column")

	ctx.ListStatus, _ = ra.NewString("status").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only list cards with this status").
		SetCompletionFunc(completeStatuses).
		Register(cmd)

	ctx.ListJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(server, status string, jsonOutput bool) {
	app := NewApp(server, false)
	ctx := context.Background()

	if status != "" {
		listStatus(ctx, app, status, jsonOutput)
		return
	}

	view, err := app.Client.Board(ctx)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewBoardOutput(view)); err != nil {
			Fatal(err)
		}
		return
	}

	for i, col := range view.Columns {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(renderColumnHeader(col))
		for _, c := range col.Cards {
			fmt.Printf("  %s\n", renderCardLine(c))
		}
	}
}

func listStatus(ctx context.Context, app *App, status string, jsonOutput bool) {
	cards, err := app.Client.ListCards(ctx, status)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewListOutput(cards, app.Settings.ColumnSpecs())); err != nil {
			Fatal(err)
		}
		return
	}

	if len(cards) == 0 {
		PrintInfo("No cards in %s", status)
		return
	}
	for _, c := range cards {
		fmt.Println(renderCardLine(c))
	}
}

// columnTitle returns the configured title for a status.
func columnTitle(app *App, status model.Status) string {
	return model.ColumnFor(app.Settings.ColumnSpecs(), status).Title
}
