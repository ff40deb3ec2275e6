package cli

import (
	"context"

	"github.com/amterp/ra"
)

func registerMove(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("move")
	cmd.SetDescription("Move a card to another column")

	ctx.MoveCard, _ = ra.NewString("card").
		SetUsage("Card ID, ID prefix or title").
		SetCompletionFunc(completeCards).
		Register(cmd)

	ctx.MoveStatus, _ = ra.NewString("status").
		SetUsage("Target status: todo, in-progress or done").
		SetCompletionFunc(completeStatuses).
		Register(cmd)

	ctx.MoveUsed, _ = parent.RegisterCmd(cmd)
}

func runMove(server, ref, status string) {
	app := NewApp(server, false)
	ctx := context.Background()

	card, err := app.ResolveCard(ctx, ref)
	if err != nil {
		Fatal(err)
	}

	moved, err := app.Client.MoveCard(ctx, card.ID, status)
	if err != nil {
		Fatal(err)
	}

	if moved.Status == card.Status {
		PrintInfo("%s is already in %s", RenderCardID(card.ID), columnTitle(app, moved.Status))
		return
	}
	PrintSuccess("Moved %s to %s", RenderCardID(moved.ID), columnTitle(app, moved.Status))
}
