package model

// ColumnSpec describes how one status is shown on the board.
// The set of columns is fixed; only titles and colors are configurable.
type ColumnSpec struct {
	Status Status `toml:"-" json:"status"`
	Title  string `toml:"title" json:"title"`
	Color  string `toml:"color" json:"color"`
}

// DefaultColumns returns the three board columns in display order.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Status: StatusTodo, Title: "To Do", Color: "#6b7280"},
		{Status: StatusInProgress, Title: "In Progress", Color: "#f59e0b"},
		{Status: StatusDone, Title: "Done", Color: "#10b981"},
	}
}

// ColumnFor returns the spec for the given status, falling back to the default.
func ColumnFor(specs []ColumnSpec, status Status) ColumnSpec {
	for _, spec := range specs {
		if spec.Status == status {
			return spec
		}
	}
	for _, spec := range DefaultColumns() {
		if spec.Status == status {
			return spec
		}
	}
	return ColumnSpec{Status: status, Title: status.String()}
}
