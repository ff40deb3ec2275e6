package api

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
)

// settingsDebounce coalesces the burst of events an editor save produces.
const settingsDebounce = 100 * time.Millisecond

// SettingsSubscriber receives settings after each successful reload.
type SettingsSubscriber interface {
	OnSettingsChange(settings *model.Settings)
}

// SettingsWatcher reloads the settings file when it changes on disk.
//
// It watches the file's directory rather than the file, since editors often
// save by writing a temp file and renaming it over the original.
type SettingsWatcher struct {
	watcher  *fsnotify.Watcher
	store    store.SettingsStore
	dir      string
	filename string
	logger   *log.Logger

	mu          sync.RWMutex
	subscribers []SettingsSubscriber
	timer       *time.Timer
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewSettingsWatcher creates a watcher for the store's settings file.
func NewSettingsWatcher(settingsStore store.SettingsStore, logger *log.Logger) (*SettingsWatcher, error) {
	path := settingsStore.Path()
	if path == "" {
		return nil, fmt.Errorf("settings path is unknown")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &SettingsWatcher{
		watcher:  watcher,
		store:    settingsStore,
		dir:      filepath.Dir(path),
		filename: filepath.Base(path),
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive reloaded settings.
func (sw *SettingsWatcher) Subscribe(sub SettingsSubscriber) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.subscribers = append(sw.subscribers, sub)
}

// Start begins watching. The settings directory must exist.
func (sw *SettingsWatcher) Start() error {
	sw.mu.Lock()
	if sw.running {
		sw.mu.Unlock()
		return nil
	}
	if sw.stopped {
		sw.mu.Unlock()
		return fmt.Errorf("settings watcher cannot be restarted after stop")
	}
	sw.running = true
	sw.mu.Unlock()

	if err := sw.watcher.Add(sw.dir); err != nil {
		return fmt.Errorf("watching %s: %w", sw.dir, err)
	}

	go sw.run()
	return nil
}

// Stop stops watching for changes.
func (sw *SettingsWatcher) Stop() error {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return nil
	}
	wasRunning := sw.running
	sw.running = false
	sw.stopped = true
	if sw.timer != nil {
		sw.timer.Stop()
		sw.timer = nil
	}
	sw.mu.Unlock()

	if wasRunning {
		close(sw.stopCh)
	}
	return sw.watcher.Close()
}

func (sw *SettingsWatcher) run() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if sw.relevant(event) {
				sw.schedule()
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.WithError(err).Warn("Settings watcher error")

		case <-sw.stopCh:
			return
		}
	}
}

// relevant reports whether event could have changed the settings file.
func (sw *SettingsWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != sw.filename {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}

func (sw *SettingsWatcher) schedule() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.stopped {
		return
	}
	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.timer = time.AfterFunc(settingsDebounce, sw.Reload)
}

// Reload loads the settings file and hands the result to subscribers.
// A file that fails to load is reported and the previous settings stay in effect.
func (sw *SettingsWatcher) Reload() {
	sw.mu.RLock()
	if sw.stopped {
		sw.mu.RUnlock()
		return
	}
	subs := make([]SettingsSubscriber, len(sw.subscribers))
	copy(subs, sw.subscribers)
	sw.mu.RUnlock()

	settings, err := sw.store.Load()
	if err != nil {
		sw.logger.WithError(err).Warn("Ignoring settings change")
		return
	}
	if unknown := settings.UnknownColumnKeys(); len(unknown) > 0 {
		sw.logger.WithField("keys", unknown).Warn("Unknown column keys in settings")
	}
	sw.logger.WithField("path", sw.store.Path()).Info("Settings reloaded")

	for _, sub := range subs {
		sub.OnSettingsChange(settings)
	}
}
