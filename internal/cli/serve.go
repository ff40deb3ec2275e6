package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amterp/kanboard/internal/api"
	"github.com/amterp/kanboard/internal/logging"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
	"github.com/amterp/ra"
)

const shutdownTimeout = 5 * time.Second

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the board server")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(0).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on (default: server.port; tries upward if in use)").
		Register(cmd)

	ctx.ServeNoSeed, _ = ra.NewBool("no-seed").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Start with an empty board instead of the example cards").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(port int, noSeed bool) {
	app := NewApp("", false)
	settings := app.Settings

	if port == 0 {
		port = settings.Server.Port
	}

	var seed []model.Card
	if !noSeed && !settings.Server.NoSeed {
		seed = model.SeedCards()
	}

	logger := logging.New(settings.Log.Level, os.Stderr)

	// Find an available port starting from the requested one
	actualPort := findAvailablePort(port)
	if actualPort != port {
		logger.WithField("requested", port).Warn("Port in use, picked another")
	}

	server := api.NewServer(api.ServerConfig{
		Port:          actualPort,
		Cards:         store.NewCardStore(seed),
		SettingsStore: app.SettingsStore,
		Settings:      settings,
		Logger:        logger,
	})

	url := fmt.Sprintf("http://localhost:%d", actualPort)
	fmt.Printf("Kanboard server running at %s\n", RenderURL(url))
	fmt.Println(RenderMuted("Press Ctrl+C to stop"))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			Fatal(err)
		}
		return
	case <-sigCtx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		Fatal(err)
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
