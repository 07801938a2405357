package domain

import "time"

// ReportStatus represents the lifecycle state of a work report.
type ReportStatus string

const (
	StatusInProgress ReportStatus = "in-progress"
	StatusCompleted  ReportStatus = "completed"
)

// validTransitions defines the allowed report state machine transitions.
var validTransitions = map[ReportStatus][]ReportStatus{
	StatusInProgress: {StatusCompleted},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Zero reports whether the point carries no fix at all.
func (c Coordinates) Zero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// WorkReport records one worker's geotagged "start work" submission and its
// eventual completion.
type WorkReport struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Description string       `json:"description"`
	Area        string       `json:"area,omitempty"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     *time.Time   `json:"end_time,omitempty"`
	Status      ReportStatus `json:"status"`
	StartImage  string       `json:"start_image"`
	EndImage    string       `json:"end_image,omitempty"`
	Location    Coordinates  `json:"location"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ReportFilter narrows report queries for the map view. Zero values mean
// "no constraint on this dimension".
type ReportFilter struct {
	UserID string
	Status ReportStatus
	Area   string
	From   time.Time
	To     time.Time
}
