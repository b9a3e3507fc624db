package handler

import (
	"github.com/gofiber/fiber/v3"

	"levelminds/internal/delivery/http/dto"
	"levelminds/internal/usecase"
)

type StudentHandler struct {
	apps        usecase.ApplicationUsecase
	assessments usecase.AssessmentUsecase
	help        usecase.HelpUsecase
}

type helpRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

func NewStudentHandler(apps usecase.ApplicationUsecase, assessments usecase.AssessmentUsecase, help usecase.HelpUsecase) *StudentHandler {
	return &StudentHandler{apps: apps, assessments: assessments, help: help}
}

func (h *StudentHandler) Schedule(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	ivs, err := h.apps.StudentSchedule(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewInterviewResponses(ivs))
}

func (h *StudentHandler) Applications(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	apps, err := h.apps.ListForStudent(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewApplicationResponses(apps))
}

func (h *StudentHandler) Assessments(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	out, err := h.assessments.ListForStudent(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewAssessmentSummaryResponses(out))
}

// Help is open to every role; students reach it under /students/help.
func (h *StudentHandler) Help(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req helpRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	t, err := h.help.Submit(c.Context(), userID, req.Subject, req.Description)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewHelpTicketResponse(t))
}
