package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"levelminds/internal/delivery/http/dto"
	"levelminds/internal/domain/user"
	"levelminds/internal/usecase"
)

type JobHandler struct {
	jobs     usecase.JobUsecase
	matching usecase.MatchingUsecase
	apps     usecase.ApplicationUsecase
}

type jobRequest struct {
	Title               string `json:"title"`
	JobTypeID           int64  `json:"job_type_id"`
	SubjectID           *int64 `json:"subject_id"`
	Description         string `json:"description"`
	Responsibilities    string `json:"responsibilities"`
	Requirements        string `json:"requirements"`
	MinSalary           int    `json:"min_salary"`
	MaxSalary           *int   `json:"max_salary"`
	ApplicationDeadline string `json:"application_deadline"`
}

type jobUpdateRequest struct {
	Title               *string `json:"title"`
	JobTypeID           *int64  `json:"job_type_id"`
	SubjectID           *int64  `json:"subject_id"`
	Description         *string `json:"description"`
	Responsibilities    *string `json:"responsibilities"`
	Requirements        *string `json:"requirements"`
	MinSalary           *int    `json:"min_salary"`
	MaxSalary           *int    `json:"max_salary"`
	ApplicationDeadline *string `json:"application_deadline"`
	Status              *string `json:"status"`
}

func NewJobHandler(jobs usecase.JobUsecase, matching usecase.MatchingUsecase, apps usecase.ApplicationUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, matching: matching, apps: apps}
}

// List serves the matched list to students and every open job to schools and admins.
func (h *JobHandler) List(c fiber.Ctx) error {
	userID, role, err := currentUser(c)
	if err != nil {
		return err
	}

	if role == user.RoleStudent {
		jobs, err := h.matching.ListMatchedJobs(c.Context(), userID)
		if err != nil {
			return mapUsecaseError(err)
		}
		return ok(c, dto.NewJobResponses(jobs))
	}

	jobs, err := h.jobs.ListOpen(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewJobResponses(jobs))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	j, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewJobResponse(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	deadline, err := parseDeadline(req.ApplicationDeadline)
	if err != nil {
		return err
	}

	j, err := h.jobs.Create(c.Context(), userID, usecase.JobInput{
		Title:               req.Title,
		JobTypeID:           req.JobTypeID,
		SubjectID:           req.SubjectID,
		Description:         req.Description,
		Responsibilities:    req.Responsibilities,
		Requirements:        req.Requirements,
		MinSalary:           req.MinSalary,
		MaxSalary:           req.MaxSalary,
		ApplicationDeadline: deadline,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req jobUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	in := usecase.JobUpdateInput{
		Title:            req.Title,
		JobTypeID:        req.JobTypeID,
		SubjectID:        req.SubjectID,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		Status:           req.Status,
	}
	if req.ApplicationDeadline != nil {
		d, err := parseDeadline(*req.ApplicationDeadline)
		if err != nil {
			return err
		}
		in.ApplicationDeadline = &d
	}

	j, err := h.jobs.Update(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewJobResponse(j))
}

func (h *JobHandler) Apply(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := int64Param(c, "jobId")
	if err != nil {
		return err
	}
	app, err := h.apps.Apply(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewApplicationResponse(app))
}

// parseDeadline accepts RFC 3339 or a bare date; a bare date means the end of that day (UTC).
func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, badRequest("application_deadline must be RFC 3339 or YYYY-MM-DD", err)
	}
	return d.AddDate(0, 0, 1).Add(-time.Second), nil
}
