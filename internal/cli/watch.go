package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/ra"
)

const clearScreen = "\033[H\033[2J"

func registerWatch(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("watch")
	cmd.SetDescription("Follow the board live, redrawing on every change")

	ctx.WatchUsed, _ = parent.RegisterCmd(cmd)
}

func runWatch(server string) {
	app := NewApp(server, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.Client.Watch(ctx, func(view board.View) {
		fmt.Print(clearScreen)
		fmt.Println(renderBoard(view))
		fmt.Println(RenderMuted(fmt.Sprintf("revision %d · %s · Ctrl+C to stop", view.Revision, app.Client.BaseURL())))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		Fatal(err)
	}
}
