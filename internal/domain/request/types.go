package request

// Status is the closed set of lifecycle states a service request moves
// through. Requests are never deleted; cancellation is itself a terminal
// status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusReviewed   Status = "reviewed"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no outgoing transition exists for s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// AllStatuses returns the enumerated set in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusReviewed,
		StatusAssigned,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}
