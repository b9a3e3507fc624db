package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"levelminds/internal/delivery/http/dto"
	"levelminds/internal/usecase"
)

type MasterDataHandler struct {
	master  usecase.MasterDataUsecase
	catalog usecase.AssessmentCatalogUsecase
}

type nameRequest struct {
	Name string `json:"name"`
}

type skillRequest struct {
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type jobTypeSkillsRequest struct {
	SkillIDs []int64 `json:"skill_ids"`
}

func NewMasterDataHandler(master usecase.MasterDataUsecase, catalog usecase.AssessmentCatalogUsecase) *MasterDataHandler {
	return &MasterDataHandler{master: master, catalog: catalog}
}

func bindName(c fiber.Ctx) (string, error) {
	var req nameRequest
	if err := c.Bind().Body(&req); err != nil {
		return "", badRequest("Invalid request payload", err)
	}
	return req.Name, nil
}

// Job types

func (h *MasterDataHandler) ListJobTypes(c fiber.Ctx) error {
	out, err := h.master.ListJobTypes(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewJobTypeResponses(out))
}

func (h *MasterDataHandler) CreateJobType(c fiber.Ctx) error {
	name, err := bindName(c)
	if err != nil {
		return err
	}
	t, err := h.master.CreateJobType(c.Context(), name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NamedResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt})
}

func (h *MasterDataHandler) UpdateJobType(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	name, err := bindName(c)
	if err != nil {
		return err
	}
	t, err := h.master.UpdateJobType(c.Context(), id, name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NamedResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt})
}

func (h *MasterDataHandler) DeleteJobType(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteJobType(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *MasterDataHandler) SetJobTypeSkills(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req jobTypeSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	out, err := h.master.SetJobTypeSkills(c.Context(), id, req.SkillIDs)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSkillResponses(out))
}

func (h *MasterDataHandler) SkillsByJobType(c fiber.Ctx) error {
	id, err := int64Param(c, "jobTypeId")
	if err != nil {
		return err
	}
	out, err := h.master.ListSkillsByJobType(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSkillResponses(out))
}

// Subjects

func (h *MasterDataHandler) ListSubjects(c fiber.Ctx) error {
	out, err := h.master.ListSubjects(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSubjectResponses(out))
}

func (h *MasterDataHandler) CreateSubject(c fiber.Ctx) error {
	name, err := bindName(c)
	if err != nil {
		return err
	}
	s, err := h.master.CreateSubject(c.Context(), name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NamedResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
}

func (h *MasterDataHandler) UpdateSubject(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	name, err := bindName(c)
	if err != nil {
		return err
	}
	s, err := h.master.UpdateSubject(c.Context(), id, name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NamedResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
}

func (h *MasterDataHandler) DeleteSubject(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteSubject(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

// States and cities

func (h *MasterDataHandler) ListStates(c fiber.Ctx) error {
	out, err := h.master.ListStates(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewStateResponses(out))
}

func (h *MasterDataHandler) CreateState(c fiber.Ctx) error {
	name, err := bindName(c)
	if err != nil {
		return err
	}
	s, err := h.master.CreateState(c.Context(), name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NamedResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
}

func (h *MasterDataHandler) DeleteState(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.master.DeleteState(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *MasterDataHandler) ListCities(c fiber.Ctx) error {
	id, err := int64Param(c, "stateId")
	if err != nil {
		return err
	}
	out, err := h.master.ListCities(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewCityResponses(out))
}

func (h *MasterDataHandler) CreateCity(c fiber.Ctx) error {
	id, err := int64Param(c, "stateId")
	if err != nil {
		return err
	}
	name, err := bindName(c)
	if err != nil {
		return err
	}
	city, err := h.master.CreateCity(c.Context(), id, name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewCityResponse(city))
}

// Assessment catalog

func (h *MasterDataHandler) ListCategories(c fiber.Ctx) error {
	out, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewCategoryResponses(out))
}

func (h *MasterDataHandler) CreateCategory(c fiber.Ctx) error {
	name, err := bindName(c)
	if err != nil {
		return err
	}
	cat, err := h.catalog.CreateCategory(c.Context(), name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewCategoryResponse(cat))
}

func (h *MasterDataHandler) UpdateCategory(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	name, err := bindName(c)
	if err != nil {
		return err
	}
	cat, err := h.catalog.UpdateCategory(c.Context(), id, name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewCategoryResponse(cat))
}

func (h *MasterDataHandler) DeleteCategory(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteCategory(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

// ListSkills takes an optional ?category_id filter.
func (h *MasterDataHandler) ListSkills(c fiber.Ctx) error {
	var categoryID int64
	if raw := c.Query("category_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return badRequest("Invalid category_id", err)
		}
		categoryID = v
	}
	out, err := h.catalog.ListSkills(c.Context(), categoryID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSkillResponses(out))
}

func (h *MasterDataHandler) SkillsByCategory(c fiber.Ctx) error {
	id, err := int64Param(c, "categoryId")
	if err != nil {
		return err
	}
	out, err := h.catalog.ListSkills(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSkillResponses(out))
}

func (h *MasterDataHandler) GetSkill(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	s, err := h.catalog.GetSkill(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSkillResponse(s))
}

func (h *MasterDataHandler) CreateSkill(c fiber.Ctx) error {
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	s, err := h.catalog.CreateSkill(c.Context(), usecase.SkillInput{
		CategoryID: req.CategoryID, Name: req.Name, Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewSkillResponse(s))
}

func (h *MasterDataHandler) UpdateSkill(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	s, err := h.catalog.UpdateSkill(c.Context(), id, usecase.SkillInput{
		CategoryID: req.CategoryID, Name: req.Name, Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSkillResponse(s))
}

func (h *MasterDataHandler) DeleteSkill(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteSkill(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *MasterDataHandler) ListSubSkills(c fiber.Ctx) error {
	id, err := int64Param(c, "skillId")
	if err != nil {
		return err
	}
	out, err := h.catalog.ListSubSkills(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSubSkillResponses(out))
}

func (h *MasterDataHandler) CreateSubSkill(c fiber.Ctx) error {
	id, err := int64Param(c, "skillId")
	if err != nil {
		return err
	}
	name, err := bindName(c)
	if err != nil {
		return err
	}
	s, err := h.catalog.CreateSubSkill(c.Context(), id, name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewSubSkillResponse(s))
}

func (h *MasterDataHandler) UpdateSubSkill(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	name, err := bindName(c)
	if err != nil {
		return err
	}
	s, err := h.catalog.UpdateSubSkill(c.Context(), id, name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSubSkillResponse(s))
}

func (h *MasterDataHandler) DeleteSubSkill(c fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteSubSkill(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}
