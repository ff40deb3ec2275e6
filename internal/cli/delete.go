package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"
)

func registerDelete(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("delete")
	cmd.SetDescription("Delete a card")

	ctx.DeleteCard, _ = ra.NewString("card").
		SetUsage("Card ID, ID prefix or title").
		SetCompletionFunc(completeCards).
		Register(cmd)

	ctx.DeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(cmd)

	ctx.DeleteUsed, _ = parent.RegisterCmd(cmd)
}

func runDelete(server, ref string, force, interactive bool) {
	app := NewApp(server, interactive)
	ctx := context.Background()

	card, err := app.ResolveCard(ctx, ref)
	if err != nil {
		Fatal(err)
	}

	if !force {
		if !interactive {
			Fatal(fmt.Errorf("deleting card %q (%s) requires --force in non-interactive mode", card.Title, card.ID))
		}
		confirmed, err := app.Prompter.Confirm(
			fmt.Sprintf("Delete card %q (%s)?", card.Title, card.ID),
			false,
		)
		if err != nil {
			Fatal(err)
		}
		if !confirmed {
			PrintInfo("Cancelled")
			return
		}
	}

	if err := app.Client.DeleteCard(ctx, card.ID); err != nil {
		Fatal(err)
	}

	PrintSuccess("Deleted card %q (%s)", card.Title, RenderCardID(card.ID))
}
