package application

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID        int64
	JobID     int64
	StudentID int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by joined reads.
	JobTitle      string
	SchoolID      int64
	SchoolUserID  uuid.UUID
	SchoolName    string
	StudentUserID uuid.UUID
	StudentName   string
	StudentEmail  string
}

const DefaultInterviewTitle = "Scheduled Interview"

// Interview dates are "YYYY-MM-DD" and times "HH:MM", the wire and storage formats alike.
type Interview struct {
	ID            int64
	ApplicationID int64
	Title         string
	Date          string
	StartTime     string
	EndTime       string
	Location      string
	CreatedAt     time.Time

	JobID      int64
	JobTitle   string
	SchoolName string
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseSlot validates an interview date and its time window.
func ParseSlot(date, start, end string) (time.Time, time.Time, time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidSlot
	}
	s, err := time.Parse(timeLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidSlot
	}
	e, err := time.Parse(timeLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidSlot
	}
	if !e.After(s) {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidSlot
	}
	return d, s, e, nil
}
