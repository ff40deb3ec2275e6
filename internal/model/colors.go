package model

// PriorityColors maps each priority level to its badge color.
var PriorityColors = map[Priority]string{
	PriorityLow:    "#10b981", // green
	PriorityMedium: "#f59e0b", // amber
	PriorityHigh:   "#ef4444", // red
}

// PriorityColor returns the badge color for p, or "" when unset.
func PriorityColor(p Priority) string {
	return PriorityColors[p]
}
