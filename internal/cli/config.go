package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/amterp/kanboard/internal/config"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/version"
	"github.com/amterp/ra"
)

func registerConfig(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("config")
	cmd.SetDescription("Show the effective settings")

	ctx.ConfigInit, _ = ra.NewBool("init").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Write a settings file with the defaults if none exists").
		Register(cmd)

	ctx.ConfigJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ConfigUsed, _ = parent.RegisterCmd(cmd)
}

func runConfig(initFile, jsonOutput bool) {
	app := NewApp("", false)
	path := app.SettingsStore.Path()

	if initFile {
		if err := initSettingsFile(app); err != nil {
			Fatal(err)
		}
	}

	settings := app.Settings
	if jsonOutput {
		output := ConfigOutput{
			Path:    path,
			Schema:  version.CurrentSettingsSchema(),
			Server:  settings.Server,
			Log:     settings.Log,
			Drag:    settings.Drag,
			Columns: settings.ColumnSpecs(),
			Unknown: settings.UnknownColumnKeys(),
		}
		if err := printJson(output); err != nil {
			Fatal(err)
		}
		return
	}

	const labelWidth = 14
	fmt.Println(LabelValue("File", path, labelWidth))
	fmt.Println(LabelValue("Port", strconv.Itoa(settings.Server.Port), labelWidth))
	fmt.Println(LabelValue("Seed", strconv.FormatBool(!settings.Server.NoSeed), labelWidth))
	fmt.Println(LabelValue("Log level", settings.Log.Level, labelWidth))
	fmt.Println(LabelValue("Drag delay", fmt.Sprintf("%dms", settings.Drag.DelayMillis), labelWidth))
	fmt.Println(LabelValue("Drag tolerance", fmt.Sprintf("%dpx", settings.Drag.TolerancePx), labelWidth))
	fmt.Println()
	for _, spec := range settings.ColumnSpecs() {
		fmt.Printf("  %s %s %s\n", ColorSwatch(spec.Color), RenderBold(spec.Title), RenderMuted(spec.Status.String()))
	}
	for _, key := range settings.UnknownColumnKeys() {
		PrintWarning("Ignoring unknown column %q", key)
	}
}

// initSettingsFile writes defaults unless a settings file already exists.
func initSettingsFile(app *App) error {
	path := app.SettingsStore.Path()
	if path == "" {
		return fmt.Errorf("no settings path (set $HOME or $%s)", config.ConfigPathEnvVar)
	}
	if _, err := os.Stat(path); err == nil {
		PrintInfo("Settings file already exists at %s", path)
		return nil
	}

	settings := model.DefaultSettings()
	if err := app.SettingsStore.Save(settings); err != nil {
		return err
	}
	app.Settings = settings
	PrintSuccess("Wrote default settings to %s", path)
	return nil
}
