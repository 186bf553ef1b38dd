package minutes

import "strings"

// Priority of an action item.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// normalizePriority maps model-returned strings onto the enum, defaulting
// to Medium for anything unrecognized.
func normalizePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// ActionItem is one task recovered from the meeting.
type ActionItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssignedTo  string   `json:"assigned_to"`
	Priority    Priority `json:"priority"`
}

// Minutes is the structured summary of one meeting. Degraded marks that
// the plain-text or regex fallback produced part of the result.
type Minutes struct {
	SummaryMarkdown string
	ActionItems     []ActionItem
	Degraded        bool
}
