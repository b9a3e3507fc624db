package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

type Job struct {
	ID                  int64
	SchoolID            int64
	SchoolUserID        uuid.UUID
	SchoolName          string
	JobTypeID           int64
	JobTypeName         string
	SubjectID           *int64
	SubjectName         string
	Title               string
	Description         string
	Responsibilities    string
	Requirements        string
	MinSalary           int
	MaxSalary           *int
	ApplicationDeadline time.Time
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AcceptsApplications reports whether the posting is open and its deadline has not passed.
func (j Job) AcceptsApplications(now time.Time) bool {
	return j.Status == StatusOpen && !j.ApplicationDeadline.Before(now)
}

// Master data referenced by jobs and schools.

type JobType struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Subject struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type State struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type City struct {
	ID        int64
	StateID   int64
	Name      string
	CreatedAt time.Time
}
