package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/amterp/kanboard/internal/client"
	"github.com/amterp/kanboard/internal/config"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/prompt"
	"github.com/amterp/kanboard/internal/resolver"
	"github.com/amterp/kanboard/internal/store"
)

// App holds all the dependencies for the CLI.
type App struct {
	SettingsStore *store.FileSettingsStore
	Settings      *model.Settings
	Client        *client.Client
	Prompter      prompt.Prompter
}

// NewApp loads settings and points a client at the server.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(serverURL string, interactive bool) *App {
	settingsStore := store.NewSettingsStore(config.SettingsPath())

	// Load settings with warnings (don't silently ignore errors)
	settings, err := settingsStore.Load()
	if err != nil {
		PrintWarning("Failed to load settings, using defaults: %v", err)
		settings = model.DefaultSettings()
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		SettingsStore: settingsStore,
		Settings:      settings,
		Client:        client.New(ServerURL(serverURL, settings)),
		Prompter:      prompter,
	}
}

// ServerURL picks the server address: explicit flag, then $KANBOARD_URL,
// then localhost on the configured port.
func ServerURL(flag string, settings *model.Settings) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(config.ServerURLEnvVar); env != "" {
		return env
	}
	return fmt.Sprintf("http://%s:%d", config.DefaultServerHost, settings.Server.Port)
}

// ResolveCard finds a card on the server by id, id prefix or title.
func (a *App) ResolveCard(ctx context.Context, ref string) (model.Card, error) {
	cards, err := a.Client.ListCards(ctx, "")
	if err != nil {
		return model.Card{}, err
	}
	return resolver.Resolve(ref, cards)
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("%v", err)
	os.Exit(1)
}
