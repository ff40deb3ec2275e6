package api

import (
	"sync/atomic"

	"github.com/amterp/kanboard/internal/model"
)

// LiveSettings holds the settings currently in effect. The watcher swaps in
// a new value on reload; readers must treat the returned value as read-only.
type LiveSettings struct {
	current atomic.Pointer[model.Settings]
}

// NewLiveSettings starts with initial, or defaults if nil.
func NewLiveSettings(initial *model.Settings) *LiveSettings {
	if initial == nil {
		initial = model.DefaultSettings()
	}
	l := &LiveSettings{}
	l.current.Store(initial)
	return l
}

// Get returns the settings in effect.
func (l *LiveSettings) Get() *model.Settings {
	return l.current.Load()
}

// Set replaces the settings in effect.
func (l *LiveSettings) Set(settings *model.Settings) {
	l.current.Store(settings)
}

// SettingsResponse is what clients need from settings: column display and
// the drag activation thresholds for their gesture recognizer.
type SettingsResponse struct {
	Columns []model.ColumnSpec `json:"columns"`
	Drag    model.DragSettings `json:"drag"`
}

func toSettingsResponse(settings *model.Settings) SettingsResponse {
	return SettingsResponse{
		Columns: settings.ColumnSpecs(),
		Drag:    settings.Drag,
	}
}
