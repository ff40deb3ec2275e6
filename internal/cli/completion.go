package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/amterp/kanboard/internal/client"
	"github.com/amterp/kanboard/internal/config"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
	"github.com/amterp/ra"
)

// Completion functions run during ParseOrExit, before NewApp() is called,
// and must never block the shell for long.
const completionTimeout = 500 * time.Millisecond

// completeCards returns card IDs matching the given prefix, asking the
// running server. No server means no completions.
func completeCards(toComplete string) ([]string, ra.CompletionDirective) {
	settings, err := store.NewSettingsStore(config.SettingsPath()).Load()
	if err != nil {
		settings = model.DefaultSettings()
	}

	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	c := client.New(ServerURL(serverFromArgs(os.Args), settings))
	cards, err := c.ListCards(ctx, "")
	if err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}

	var result []string
	for _, card := range cards {
		if strings.HasPrefix(card.ID, toComplete) {
			result = append(result, card.ID)
		}
	}
	return result, ra.CompletionDirectiveNoFileComp
}

// completeStatuses returns status names matching the given prefix.
func completeStatuses(toComplete string) ([]string, ra.CompletionDirective) {
	var result []string
	for _, s := range model.Statuses {
		if strings.HasPrefix(s.String(), toComplete) {
			result = append(result, s.String())
		}
	}
	return result, ra.CompletionDirectiveNoFileComp
}

// completePriorities returns priority names matching the given prefix.
func completePriorities(toComplete string) ([]string, ra.CompletionDirective) {
	names := []string{"none"}
	for _, p := range model.Priorities {
		names = append(names, p.String())
	}

	var result []string
	for _, name := range names {
		if strings.HasPrefix(name, toComplete) {
			result = append(result, name)
		}
	}
	return result, ra.CompletionDirectiveNoFileComp
}

// serverFromArgs scans the argument list for an explicit -S/--server flag value.
func serverFromArgs(args []string) string {
	for i, arg := range args {
		// --server=value or -S=value (skip empty values so fallback logic runs)
		if strings.HasPrefix(arg, "--server=") {
			if v := strings.TrimPrefix(arg, "--server="); v != "" {
				return v
			}
		}
		if strings.HasPrefix(arg, "-S=") {
			if v := strings.TrimPrefix(arg, "-S="); v != "" {
				return v
			}
		}
		// --server value or -S value
		if (arg == "--server" || arg == "-S") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// registerCompletion adds the "kanboard completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
