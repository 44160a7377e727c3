package reservation

// Status is the lifecycle state of a reservation. BOOKED is the only initial
// state; CANCELED and COMPLETED are terminal.
type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCanceled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// CanTransitionTo encodes the one-way state machine: BOOKED may move to
// either terminal state, terminal states never move again.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusBooked {
		return false
	}
	return next == StatusCanceled || next == StatusCompleted
}
