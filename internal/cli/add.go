package cli

import (
	"context"
	"fmt"

	"github.com/amterp/kanboard/internal/service"
	"github.com/amterp/ra"
)

func registerAdd(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("add")
	cmd.SetDescription("Add a new card")

	ctx.AddTitle, _ = ra.NewString("title").
		SetOptional(true).
		SetUsage("Card title (prompted for if omitted)").
		Register(cmd)

	ctx.AddDescription, _ = ra.NewString("description").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Card description").
		Register(cmd)

	ctx.AddStatus, _ = ra.NewString("status").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Starting status (default: todo)").
		SetCompletionFunc(completeStatuses).
		Register(cmd)

	ctx.AddPriority, _ = ra.NewString("priority").
		SetShort("P").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Priority: low, medium or high").
		SetCompletionFunc(completePriorities).
		Register(cmd)

	ctx.AddJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output the created card as JSON").
		Register(cmd)

	ctx.AddUsed, _ = parent.RegisterCmd(cmd)
}

func runAdd(server, title, description, status, priority string, jsonOutput, interactive bool) {
	app := NewApp(server, interactive)

	if title == "" {
		var err error
		title, err = app.Prompter.Input("Title", "")
		if err != nil {
			Fatal(fmt.Errorf("title is required: %w", err))
		}
	}

	card, err := app.Client.CreateCard(context.Background(), service.AddCardInput{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
	})
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewCardOutput(card, app.Settings.ColumnSpecs())); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Created card %s in %s", RenderCardID(card.ID), columnTitle(app, card.Status))
}
