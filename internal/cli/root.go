package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Server         *string

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoSeed *bool

	// list command
	ListUsed   *bool
	ListStatus *string
	ListJson   *bool

	// show command
	ShowUsed *bool
	ShowCard *string
	ShowJson *bool

	// add command
	AddUsed        *bool
	AddTitle       *string
	AddDescription *string
	AddStatus      *string
	AddPriority    *string
	AddJson        *bool

	// edit command
	EditUsed             *bool
	EditCard             *string
	EditTitle            *string
	EditDescription      *string
	EditClearDescription *bool
	EditPriority         *string
	EditUseEditor        *bool

	// move command
	MoveUsed   *bool
	MoveCard   *string
	MoveStatus *string

	// delete command
	DeleteUsed  *bool
	DeleteCard  *string
	DeleteForce *bool

	// watch command
	WatchUsed *bool

	// tui command
	TuiUsed *bool

	// config command
	ConfigUsed *bool
	ConfigInit *bool
	ConfigJson *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("kanboard")
	cmd.SetDescription("A three-column kanban board with drag-to-move")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Server, _ = ra.NewString("server").
		SetShort("S").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Server URL (default: $KANBOARD_URL or http://localhost:<server.port>)").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerServe(cmd, ctx)
	registerList(cmd, ctx)
	registerShow(cmd, ctx)
	registerAdd(cmd, ctx)
	registerEdit(cmd, ctx)
	registerMove(cmd, ctx)
	registerDelete(cmd, ctx)
	registerWatch(cmd, ctx)
	registerTui(cmd, ctx)
	registerConfig(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	server := *ctx.Server
	interactive := !*ctx.NonInteractive

	switch {
	case *ctx.ServeUsed:
		runServe(*ctx.ServePort, *ctx.ServeNoSeed)

	case *ctx.ListUsed:
		runList(server, *ctx.ListStatus, *ctx.ListJson)

	case *ctx.ShowUsed:
		runShow(server, *ctx.ShowCard, *ctx.ShowJson)

	case *ctx.AddUsed:
		runAdd(server, *ctx.AddTitle, *ctx.AddDescription, *ctx.AddStatus, *ctx.AddPriority, *ctx.AddJson, interactive)

	case *ctx.EditUsed:
		runEdit(server, *ctx.EditCard, editFlags{
			title:            *ctx.EditTitle,
			description:      *ctx.EditDescription,
			clearDescription: *ctx.EditClearDescription,
			priority:         *ctx.EditPriority,
			useEditor:        *ctx.EditUseEditor,
		}, interactive)

	case *ctx.MoveUsed:
		runMove(server, *ctx.MoveCard, *ctx.MoveStatus)

	case *ctx.DeleteUsed:
		runDelete(server, *ctx.DeleteCard, *ctx.DeleteForce, interactive)

	case *ctx.WatchUsed:
		runWatch(server)

	case *ctx.TuiUsed:
		runTui()

	case *ctx.ConfigUsed:
		runConfig(*ctx.ConfigInit, *ctx.ConfigJson)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
