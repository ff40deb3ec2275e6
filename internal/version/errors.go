package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem while reading a file.
type SchemaVersionError struct {
	FileType    string // "settings"
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "settings/2")
	Expected    string // What was expected (e.g., "settings/1")
	MinRequired string // Minimum kanboard version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"%s schema version %s requires kanboard >= %s (file: %s, supports up to: %s)",
			e.FileType, e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	return fmt.Sprintf(
		"%s has invalid schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// InvalidSettingsSchema creates an error for a settings file with an unsupported schema.
func InvalidSettingsSchema(path, found string) error {
	e := &SchemaVersionError{
		FileType: "settings",
		FilePath: path,
		Found:    found,
		Expected: CurrentSettingsSchema(),
	}
	// Check if it's a future version
	if v, err := ParseSettingsVersion(found); err == nil && v > CurrentSettingsVersion {
		if minVersion, ok := MinKanboardVersion[found]; ok {
			e.MinRequired = minVersion
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
