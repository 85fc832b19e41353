package order

import "database/sql/driver"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// transitions holds the permitted forward transitions. Terminal states have
// no entry.
var transitions = map[Status][]Status{
	StatusNew:       {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// ParseStatus parses a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo reports whether moving from s to next is permitted.
// Requesting the current status again is not a transition at all; callers
// treat it as an idempotent no-op before consulting this.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Next returns the single forward step used by the kitchen display
// (NEW -> PREPARING -> READY -> COMPLETED). ok is false for terminal
// states and CANCELLED.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusNew:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ActiveStatuses returns the states shown on the kitchen display.
func ActiveStatuses() []Status {
	return []Status{StatusNew, StatusPreparing, StatusReady}
}
