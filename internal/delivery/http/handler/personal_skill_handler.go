package handler

import (
	"github.com/gofiber/fiber/v3"

	"levelminds/internal/delivery/http/dto"
	"levelminds/internal/usecase"
)

// PersonalSkillHandler serves the student's self-declared skills under
// /students/profile/my-skills.
type PersonalSkillHandler struct {
	skills usecase.PersonalSkillUsecase
}

func NewPersonalSkillHandler(skills usecase.PersonalSkillUsecase) *PersonalSkillHandler {
	return &PersonalSkillHandler{skills: skills}
}

type addPersonalSkillsRequest struct {
	SkillNames []string `json:"skill_names"`
}

type renamePersonalSkillRequest struct {
	SkillName string `json:"skill_name"`
}

func (h *PersonalSkillHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Put("/:skillId", h.Rename)
	r.Delete("/:skillId", h.Delete)
}

func (h *PersonalSkillHandler) List(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	out, err := h.skills.List(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewPersonalSkillResponses(out))
}

func (h *PersonalSkillHandler) Add(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req addPersonalSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	out, err := h.skills.Add(c.Context(), userID, req.SkillNames)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewPersonalSkillResponses(out))
}

func (h *PersonalSkillHandler) Rename(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := int64Param(c, "skillId")
	if err != nil {
		return err
	}
	var req renamePersonalSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	s, err := h.skills.Rename(c.Context(), userID, id, req.SkillName)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewPersonalSkillResponse(s))
}

func (h *PersonalSkillHandler) Delete(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := int64Param(c, "skillId")
	if err != nil {
		return err
	}
	if err := h.skills.Delete(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, fiber.Map{"id": id})
}
