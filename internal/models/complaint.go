package models

import "time"

// Complaint statuses as stored. Transitions are not constrained to a
// forward order; any status may replace any other.
const (
	StatusRegistered = "Registered"
	StatusAssigned   = "Assigned"
	StatusInProgress = "In-Progress"
	StatusResolved   = "Resolved"
)

type Complaint struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"` // human-readable, unique, immutable
	IssueType   string    `json:"issueType"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Status      string    `json:"status"`
	AssignedTo  string    `json:"assignedTo"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Location is the map-view projection of a complaint; only rows with
// both coordinates present are reported.
type Location struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	Status    string  `json:"status"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
