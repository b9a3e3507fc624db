package dto

import (
	"time"

	"levelminds/internal/domain/job"
)

type JobResponse struct {
	ID                  int64     `json:"id"`
	SchoolID            int64     `json:"school_id"`
	SchoolName          string    `json:"school_name"`
	JobTypeID           int64     `json:"job_type_id"`
	JobTypeName         string    `json:"job_type_name"`
	SubjectID           *int64    `json:"subject_id"`
	SubjectName         string    `json:"subject_name,omitempty"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Responsibilities    string    `json:"responsibilities"`
	Requirements        string    `json:"requirements"`
	MinSalary           int       `json:"min_salary"`
	MaxSalary           *int      `json:"max_salary"`
	ApplicationDeadline time.Time `json:"application_deadline"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:                  j.ID,
		SchoolID:            j.SchoolID,
		SchoolName:          j.SchoolName,
		JobTypeID:           j.JobTypeID,
		JobTypeName:         j.JobTypeName,
		SubjectID:           j.SubjectID,
		SubjectName:         j.SubjectName,
		Title:               j.Title,
		Description:         j.Description,
		Responsibilities:    j.Responsibilities,
		Requirements:        j.Requirements,
		MinSalary:           j.MinSalary,
		MaxSalary:           j.MaxSalary,
		ApplicationDeadline: j.ApplicationDeadline,
		Status:              string(j.Status),
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func NewJobResponses(js []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(js))
	for _, j := range js {
		out = append(out, NewJobResponse(j))
	}
	return out
}

// NamedResponse serves job types, subjects and states.
type NamedResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewJobTypeResponses(ts []job.JobType) []NamedResponse {
	out := make([]NamedResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NamedResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt})
	}
	return out
}

func NewSubjectResponses(ss []job.Subject) []NamedResponse {
	out := make([]NamedResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, NamedResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
	}
	return out
}

func NewStateResponses(ss []job.State) []NamedResponse {
	out := make([]NamedResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, NamedResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
	}
	return out
}

type CityResponse struct {
	ID        int64     `json:"id"`
	StateID   int64     `json:"state_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCityResponse(c job.City) CityResponse {
	return CityResponse{ID: c.ID, StateID: c.StateID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func NewCityResponses(cs []job.City) []CityResponse {
	out := make([]CityResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCityResponse(c))
	}
	return out
}
