package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"levelminds/internal/delivery/http/dto"
	"levelminds/internal/domain/assessment"
	"levelminds/internal/export"
	"levelminds/internal/pkg/response"
	"levelminds/internal/usecase"
)

type AdminHandler struct {
	admin       usecase.AdminUsecase
	dashboard   usecase.DashboardUsecase
	help        usecase.HelpUsecase
	settings    usecase.SettingsUsecase
	assessments usecase.AssessmentUsecase
	now         func() time.Time
}

type updateUserRequest struct {
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

type subScoreRequest struct {
	SubSkillID int64 `json:"subSkillId"`
	Score      int   `json:"score"`
}

type submitAssessmentRequest struct {
	AssessmentSkillID int64             `json:"assessmentSkillId"`
	SubSkillScores    []subScoreRequest `json:"sub_skill_scores"`
}

type jobMatchingRequest struct {
	Enabled *bool `json:"enabled"`
}

func NewAdminHandler(
	admin usecase.AdminUsecase,
	dashboard usecase.DashboardUsecase,
	help usecase.HelpUsecase,
	settings usecase.SettingsUsecase,
	assessments usecase.AssessmentUsecase,
) *AdminHandler {
	return &AdminHandler{
		admin:       admin,
		dashboard:   dashboard,
		help:        help,
		settings:    settings,
		assessments: assessments,
		now:         time.Now,
	}
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context(), c.Query("role"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewUserResponses(users))
}

func (h *AdminHandler) UpdateUser(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	if req.Email == nil && req.Role == nil {
		return badRequest("email or role is required", nil)
	}

	u, err := h.admin.UpdateUser(c.Context(), id, usecase.UpdateUserInput{Email: req.Email, Role: req.Role})
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(u))
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.admin.DeleteUser(c.Context(), actorID, id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *AdminHandler) ExportUsers(c fiber.Ctx) error {
	b, err := h.admin.ExportUsers(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return h.sendWorkbook(c, "users", b)
}

func (h *AdminHandler) ExportAssessments(c fiber.Ctx) error {
	b, err := h.admin.ExportAssessments(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return h.sendWorkbook(c, "assessments", b)
}

func (h *AdminHandler) sendWorkbook(c fiber.Ctx, prefix string, b []byte) error {
	return response.Attachment(c, export.ContentTypeXLSX, export.Filename(prefix, h.now()), b)
}

func (h *AdminHandler) Dashboard(c fiber.Ctx) error {
	m, err := h.dashboard.Admin(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, m)
}

func (h *AdminHandler) ListHelpTickets(c fiber.Ctx) error {
	ts, err := h.help.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewHelpTicketResponses(ts))
}

func (h *AdminHandler) UpdateHelpTicket(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	t, err := h.help.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewHelpTicketResponse(t))
}

func (h *AdminHandler) GetJobMatching(c fiber.Ctx) error {
	enabled, err := h.settings.JobMatchingEnabled(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, fiber.Map{"enabled": enabled})
}

func (h *AdminHandler) SetJobMatching(c fiber.Ctx) error {
	var req jobMatchingRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	if req.Enabled == nil {
		return badRequest("enabled is required", nil)
	}
	enabled, err := h.settings.SetJobMatching(c.Context(), *req.Enabled)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, fiber.Map{"enabled": enabled})
}

func (h *AdminHandler) SubmitAssessment(c fiber.Ctx) error {
	studentUserID, err := uuidParam(c, "studentUserId")
	if err != nil {
		return err
	}
	var req submitAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	if req.AssessmentSkillID <= 0 {
		return badRequest("assessmentSkillId is required", nil)
	}

	scores := make([]assessment.SubScore, 0, len(req.SubSkillScores))
	for _, s := range req.SubSkillScores {
		scores = append(scores, assessment.SubScore{SubSkillID: s.SubSkillID, Score: s.Score})
	}

	a, err := h.assessments.Submit(c.Context(), studentUserID, usecase.SubmitAssessmentInput{
		AssessmentSkillID: req.AssessmentSkillID,
		Scores:            scores,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewAssessmentResponse(a))
}

func (h *AdminHandler) StudentAssessments(c fiber.Ctx) error {
	studentUserID, err := uuidParam(c, "studentUserId")
	if err != nil {
		return err
	}
	out, err := h.assessments.ListForStudent(c.Context(), studentUserID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewAssessmentSummaryResponses(out))
}
