// Package compliance computes the weighted data-protection score shown on the
// security dashboard.
package compliance

import "math"

// Status classifies how a data-protection requirement is currently met.
type Status string

const (
	// StatusCompliant indicates the requirement is fully met.
	StatusCompliant Status = "compliant"
	// StatusPartial indicates the requirement is partially met.
	StatusPartial Status = "partial"
	// StatusNonCompliant indicates the requirement is not met.
	StatusNonCompliant Status = "non-compliant"
	// StatusPending indicates the requirement has not been assessed yet.
	StatusPending Status = "pending"
)

// Valid reports whether s is one of the recognised compliance statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusCompliant, StatusPartial, StatusNonCompliant, StatusPending:
		return true
	}
	return false
}

// Weight returns the score contribution of a single status. Unknown statuses
// contribute nothing, matching the pending weight.
func Weight(status Status) float64 {
	switch status {
	case StatusCompliant:
		return 1
	case StatusPartial:
		return 0.5
	default:
		return 0
	}
}

// Score aggregates statuses into a rounded 0-100 percentage. An empty input
// scores zero rather than dividing by zero.
func Score(statuses []Status) int {
	if len(statuses) == 0 {
		return 0
	}
	var sum float64
	for _, status := range statuses {
		sum += Weight(status)
	}
	return int(math.Round(100 * sum / float64(len(statuses))))
}
