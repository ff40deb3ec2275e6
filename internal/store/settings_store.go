package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/version"
)

// FileSettingsStore implements SettingsStore using a TOML file.
type FileSettingsStore struct {
	path string
}

// NewSettingsStore creates a settings store for the given file path.
// An empty path disables persistence: Load returns defaults, Save is a no-op.
func NewSettingsStore(path string) *FileSettingsStore {
	return &FileSettingsStore{path: path}
}

// Path returns the settings file path.
func (s *FileSettingsStore) Path() string {
	return s.path
}

// Load reads settings from disk with defaults applied.
// Returns defaults if the file doesn't exist. A file without a schema
// string is accepted as hand-written; a mismatched schema is rejected.
func (s *FileSettingsStore) Load() (*model.Settings, error) {
	if s.path == "" {
		return model.DefaultSettings(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings model.Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", s.path, err)
	}

	if settings.KanboardSchema != "" && settings.KanboardSchema != version.CurrentSettingsSchema() {
		return nil, version.InvalidSettingsSchema(s.path, settings.KanboardSchema)
	}

	settings.ApplyDefaults()
	return &settings, nil
}

// Save writes settings to disk, stamping the current schema.
func (s *FileSettingsStore) Save(settings *model.Settings) error {
	settings.KanboardSchema = version.CurrentSettingsSchema()

	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(settings)
}
