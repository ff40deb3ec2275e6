package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/logging"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/service"
	"github.com/amterp/kanboard/internal/store"
)

// ServerConfig holds what the server needs to run one board session.
type ServerConfig struct {
	Port          int
	Cards         store.CardStore
	SettingsStore store.SettingsStore // nil disables live reload
	Settings      *model.Settings
	Logger        *log.Logger
}

// Server wraps the HTTP server for the board API.
type Server struct {
	httpServer *http.Server
	controller *board.Controller
	settings   *LiveSettings
	watcher    *SettingsWatcher
	wsHub      *WebSocketHub
	logger     *log.Logger
}

// NewServer wires the controller, service, handlers, websocket hub and
// settings watcher around cfg.Cards.
func NewServer(cfg ServerConfig) *Server {
	live := NewLiveSettings(cfg.Settings)
	controller := board.NewController(cfg.Cards, live.Get().ColumnSpecs())
	cards := service.NewCardService(cfg.Cards, controller)

	mux := http.NewServeMux()
	NewHandler(cards, live).RegisterRoutes(mux)

	wsHub := NewWebSocketHub(controller, live, cfg.Logger)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)

	s := &Server{
		httpServer: &http.Server{
			Addr:        fmt.Sprintf(":%d", cfg.Port),
			Handler:     Logging(cfg.Logger, Cors(mux)),
			ReadTimeout: 15 * time.Second,
			// No WriteTimeout: it would cut off long-lived websocket connections.
		},
		controller: controller,
		settings:   live,
		wsHub:      wsHub,
		logger:     cfg.Logger,
	}

	if cfg.SettingsStore != nil {
		watcher, err := NewSettingsWatcher(cfg.SettingsStore, cfg.Logger)
		if err != nil {
			cfg.Logger.WithError(err).Warn("Settings reload disabled")
		} else {
			watcher.Subscribe(s)
			s.watcher = watcher
		}
	}

	return s
}

// OnSettingsChange applies reloaded settings to the running session.
func (s *Server) OnSettingsChange(settings *model.Settings) {
	s.settings.Set(settings)
	s.logger.SetLevel(logging.ResolveLevel(settings.Log.Level))
	s.controller.SetColumns(settings.ColumnSpecs())
	s.wsHub.OnSettingsChange(settings)
}

// Handler returns the root HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.startWatcher(); err != nil {
			s.logger.WithError(err).Warn("Settings reload disabled")
		}
	}

	s.logger.WithField("addr", s.httpServer.Addr).Info("Serving board")
	return s.httpServer.ListenAndServe()
}

func (s *Server) startWatcher() error {
	// The directory has to exist to be watched; the file itself may not yet.
	if err := os.MkdirAll(s.watcher.dir, 0755); err != nil {
		return err
	}
	return s.watcher.Start()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.WithError(err).Warn("Failed to stop settings watcher")
		}
	}
	s.wsHub.CloseAll()
	s.controller.Close()

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
