package dto

import (
	"time"

	"github.com/google/uuid"

	"levelminds/internal/domain/application"
)

type ApplicationResponse struct {
	ID            int64     `json:"id"`
	JobID         int64     `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	SchoolName    string    `json:"school_name"`
	StudentID     int64     `json:"student_id"`
	StudentUserID uuid.UUID `json:"student_user_id"`
	StudentName   string    `json:"student_name"`
	StudentEmail  string    `json:"student_email"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            a.ID,
		JobID:         a.JobID,
		JobTitle:      a.JobTitle,
		SchoolName:    a.SchoolName,
		StudentID:     a.StudentID,
		StudentUserID: a.StudentUserID,
		StudentName:   a.StudentName,
		StudentEmail:  a.StudentEmail,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func NewApplicationResponses(as []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(as))
	for _, a := range as {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

type InterviewResponse struct {
	ID            int64  `json:"id"`
	ApplicationID int64  `json:"application_id"`
	Title         string `json:"title"`
	InterviewDate string `json:"interview_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Location      string `json:"location"`
	JobID         int64  `json:"job_id"`
	JobTitle      string `json:"job_title"`
	SchoolName    string `json:"school_name"`
}

func NewInterviewResponse(iv application.Interview) InterviewResponse {
	return InterviewResponse{
		ID:            iv.ID,
		ApplicationID: iv.ApplicationID,
		Title:         iv.Title,
		InterviewDate: iv.Date,
		StartTime:     iv.StartTime,
		EndTime:       iv.EndTime,
		Location:      iv.Location,
		JobID:         iv.JobID,
		JobTitle:      iv.JobTitle,
		SchoolName:    iv.SchoolName,
	}
}

func NewInterviewResponses(ivs []application.Interview) []InterviewResponse {
	out := make([]InterviewResponse, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, NewInterviewResponse(iv))
	}
	return out
}
