package cli

import (
	"context"
	"fmt"

	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/ra"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Show card details")

	ctx.ShowCard, _ = ra.NewString("card").
		SetUsage("Card ID, ID prefix or title").
		SetCompletionFunc(completeCards).
		Register(cmd)

	ctx.ShowJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(server, ref string, jsonOutput bool) {
	app := NewApp(server, false)

	card, err := app.ResolveCard(context.Background(), ref)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewCardOutput(card, app.Settings.ColumnSpecs())); err != nil {
			Fatal(err)
		}
		return
	}

	printCard(app, card)
}

func printCard(app *App, card model.Card) {
	const labelWidth = 12

	spec := model.ColumnFor(app.Settings.ColumnSpecs(), card.Status)

	fmt.Println(TitleBox(card.Title))
	fmt.Println(LabelValue("ID", RenderCardID(card.ID), labelWidth))
	fmt.Println(LabelValue("Column", RenderColumn(spec), labelWidth))

	priority := RenderPriority(card.Priority)
	if priority == "" {
		priority = RenderMuted("none")
	}
	fmt.Println(LabelValue("Priority", priority, labelWidth))

	if card.Description != "" {
		fmt.Println()
		fmt.Println(DescriptionBox(card.Description))
	}
}
