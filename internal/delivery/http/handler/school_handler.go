package handler

import (
	"github.com/gofiber/fiber/v3"

	"levelminds/internal/delivery/http/dto"
	"levelminds/internal/usecase"
)

type SchoolHandler struct {
	jobs      usecase.JobUsecase
	apps      usecase.ApplicationUsecase
	dashboard usecase.DashboardUsecase
}

type statusRequest struct {
	Status string `json:"status"`
}

type scheduleInterviewRequest struct {
	Title         string `json:"title"`
	InterviewDate string `json:"interview_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Location      string `json:"location"`
}

func NewSchoolHandler(jobs usecase.JobUsecase, apps usecase.ApplicationUsecase, dashboard usecase.DashboardUsecase) *SchoolHandler {
	return &SchoolHandler{jobs: jobs, apps: apps, dashboard: dashboard}
}

func (h *SchoolHandler) Jobs(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListForSchool(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewJobResponses(jobs))
}

func (h *SchoolHandler) Applicants(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := int64Param(c, "jobId")
	if err != nil {
		return err
	}
	apps, err := h.apps.ListApplicants(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewApplicationResponses(apps))
}

func (h *SchoolHandler) Dashboard(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	m, err := h.dashboard.School(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, m)
}

func (h *SchoolHandler) UpdateApplicationStatus(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	appID, err := int64Param(c, "appId")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	app, err := h.apps.UpdateStatus(c.Context(), userID, appID, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewApplicationResponse(app))
}

func (h *SchoolHandler) ScheduleInterview(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	appID, err := int64Param(c, "appId")
	if err != nil {
		return err
	}
	var req scheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	iv, err := h.apps.ScheduleInterview(c.Context(), userID, appID, usecase.ScheduleInterviewInput{
		Title:     req.Title,
		Date:      req.InterviewDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewInterviewResponse(iv))
}
