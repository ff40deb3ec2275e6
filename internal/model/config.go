package model

// Settings is the user's kanboard configuration.
// Stored at ~/.config/kanboard/config.toml (or $KANBOARD_CONFIG).
// Schema changes require a version bump—see internal/version/version.go.
type Settings struct {
	KanboardSchema string                    `toml:"kanboard_schema" json:"-"`
	Server         ServerSettings            `toml:"server" json:"server"`
	Log            LogSettings               `toml:"log" json:"log"`
	Drag           DragSettings              `toml:"drag" json:"drag"`
	Editor         string                    `toml:"editor,omitempty" json:"editor,omitempty"`   // for `kanboard edit --editor`
	Columns        map[string]ColumnSettings `toml:"columns,omitempty" json:"columns,omitempty"` // status -> display
}

// ServerSettings configures `kanboard serve`.
type ServerSettings struct {
	Port   int  `toml:"port,omitempty" json:"port"`
	NoSeed bool `toml:"no_seed,omitempty" json:"no_seed"` // start with an empty board
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `toml:"level,omitempty" json:"level"`
}

// DragSettings are the activation thresholds handed to the gesture recognizer.
// A drag starts once the pointer is held for DelayMillis without moving more
// than TolerancePx.
type DragSettings struct {
	DelayMillis int `toml:"delay_millis,omitempty" json:"delay_millis"`
	TolerancePx int `toml:"tolerance_px,omitempty" json:"tolerance_px"`
}

// ColumnSettings overrides the display of a single column.
type ColumnSettings struct {
	Title string `toml:"title,omitempty" json:"title,omitempty"`
	Color string `toml:"color,omitempty" json:"color,omitempty"`
}

const (
	DefaultPort            = 3000
	DefaultLogLevel        = "info"
	DefaultDragDelayMillis = 250
	DefaultDragTolerancePx = 5
)

// DefaultSettings returns settings with every field populated.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (s *Settings) ApplyDefaults() {
	if s.Server.Port == 0 {
		s.Server.Port = DefaultPort
	}
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
	if s.Drag.DelayMillis == 0 {
		s.Drag.DelayMillis = DefaultDragDelayMillis
	}
	if s.Drag.TolerancePx == 0 {
		s.Drag.TolerancePx = DefaultDragTolerancePx
	}
}

// ColumnSpecs returns the board columns with any overrides applied.
// Unknown status keys are ignored.
func (s *Settings) ColumnSpecs() []ColumnSpec {
	specs := DefaultColumns()
	for i, spec := range specs {
		override, ok := s.Columns[spec.Status.String()]
		if !ok {
			continue
		}
		if override.Title != "" {
			specs[i].Title = override.Title
		}
		if override.Color != "" {
			specs[i].Color = override.Color
		}
	}
	return specs
}

// UnknownColumnKeys returns column keys that don't name a status.
func (s *Settings) UnknownColumnKeys() []string {
	var unknown []string
	for key := range s.Columns {
		if _, err := ParseStatus(key); err != nil {
			unknown = append(unknown, key)
		}
	}
	return unknown
}
