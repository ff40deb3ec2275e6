package cli

import (
	"context"
	"fmt"

	"github.com/amterp/kanboard/internal/editor"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/prompt"
	"github.com/amterp/kanboard/internal/service"
	"github.com/amterp/kanboard/internal/util"
	"github.com/amterp/ra"
)

const (
	editFieldTitle       = "title"
	editFieldDescription = "description"
	editFieldPriority    = "priority"
)

// editFlags holds the edit command's optional field flags.
// Empty strings mean "not given".
type editFlags struct {
	title            string
	description      string
	clearDescription bool
	priority         string
	useEditor        bool
}

func (f editFlags) empty() bool {
	return f.title == "" && f.description == "" && !f.clearDescription && f.priority == "" && !f.useEditor
}

// textEditor edits text outside the terminal prompt.
type textEditor interface {
	Edit(content string) (string, error)
}

func registerEdit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("edit")
	cmd.SetDescription("Edit a card's title, description or priority")

	ctx.EditCard, _ = ra.NewString("card").
		SetUsage("Card ID, ID prefix or title").
		SetCompletionFunc(completeCards).
		Register(cmd)

	ctx.EditTitle, _ = ra.NewString("title").
		SetShort("t").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New title").
		Register(cmd)

	ctx.EditDescription, _ = ra.NewString("description").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New description").
		Register(cmd)

	ctx.EditClearDescription, _ = ra.NewBool("clear-description").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Remove the description").
		Register(cmd)

	ctx.EditUseEditor, _ = ra.NewBool("editor").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Edit the description in $EDITOR").
		Register(cmd)

	ctx.EditPriority, _ = ra.NewString("priority").
		SetShort("P").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New priority: low, medium, high or none").
		SetCompletionFunc(completePriorities).
		Register(cmd)

	ctx.EditUsed, _ = parent.RegisterCmd(cmd)
}

func runEdit(server, ref string, flags editFlags, interactive bool) {
	app := NewApp(server, interactive)
	ctx := context.Background()

	card, err := app.ResolveCard(ctx, ref)
	if err != nil {
		Fatal(err)
	}

	input, err := buildEditInput(app.Prompter, editor.New(app.Settings.Editor), card, flags)
	if err != nil {
		Fatal(err)
	}

	updated, err := app.Client.UpdateCard(ctx, input)
	if err != nil {
		Fatal(err)
	}

	if updated == card {
		PrintInfo("No changes to %s", RenderCardID(card.ID))
		return
	}
	PrintSuccess("Updated card %s", RenderCardID(updated.ID))
}

// buildEditInput turns flags into an edit request, prompting for a field
// when no flags were given.
func buildEditInput(p prompt.Prompter, ed textEditor, card model.Card, flags editFlags) (service.EditCardInput, error) {
	input := service.EditCardInput{ID: card.ID}

	if flags.empty() {
		return promptEdit(p, card)
	}

	if flags.title != "" {
		input.Title = &flags.title
	}
	switch {
	case flags.clearDescription:
		empty := ""
		input.Description = &empty
	case flags.description != "":
		input.Description = &flags.description
	case flags.useEditor:
		edited, err := ed.Edit(card.Description)
		if err != nil {
			return input, err
		}
		input.Description = &edited
	}
	if flags.priority != "" {
		input.Priority = &flags.priority
	}
	return input, nil
}

func promptEdit(p prompt.Prompter, card model.Card) (service.EditCardInput, error) {
	input := service.EditCardInput{ID: card.ID}

	field, err := p.Select("Field to edit", []string{editFieldTitle, editFieldDescription, editFieldPriority})
	if err != nil {
		return input, fmt.Errorf("no fields given: %w", err)
	}

	switch field {
	case editFieldTitle:
		value, err := p.Input("Title", card.Title)
		if err != nil {
			return input, err
		}
		// A cleared title reverts to the current one.
		if util.CleanText(value) != "" {
			input.Title = &value
		}

	case editFieldDescription:
		value, err := p.Text("Description", card.Description)
		if err != nil {
			return input, err
		}
		input.Description = &value

	case editFieldPriority:
		options := []string{"none"}
		for _, level := range model.Priorities {
			options = append(options, level.String())
		}
		value, err := p.Select("Priority", options)
		if err != nil {
			return input, err
		}
		input.Priority = &value

	default:
		return input, fmt.Errorf("unknown field %q", field)
	}

	return input, nil
}
