package application

import "errors"

type Status string

const (
	StatusApplied            Status = "applied"
	StatusShortlisted        Status = "shortlisted"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusRejected           Status = "rejected"
	StatusHired              Status = "hired"
)

var (
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrScheduleViaStatus = errors.New("interviews are scheduled through the schedule-interview endpoint")
	ErrInvalidSlot       = errors.New("interview date or time window is invalid")
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusShortlisted, StatusInterviewScheduled, StatusRejected, StatusHired:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusHired
}

// manual lists the transitions a school may request directly.
// interview_scheduled is only reached through CanSchedule.
var manual = map[Status][]Status{
	StatusApplied:            {StatusShortlisted, StatusRejected},
	StatusShortlisted:        {StatusRejected},
	StatusInterviewScheduled: {StatusHired, StatusRejected},
}

// CheckTransition validates a status change requested through the status endpoint.
func CheckTransition(from, to Status) error {
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	if to == StatusInterviewScheduled {
		return ErrScheduleViaStatus
	}
	for _, allowed := range manual[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// CanSchedule reports whether an interview may be created for an application in this state.
func CanSchedule(from Status) bool {
	return from == StatusApplied || from == StatusShortlisted
}
