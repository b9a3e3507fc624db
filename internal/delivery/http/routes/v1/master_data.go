package v1

import (
	"levelminds/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterMasterData mounts the read-only reference lists for any signed-in user.
func RegisterMasterData(r fiber.Router, h *handler.MasterDataHandler) {
	if r == nil || h == nil {
		return
	}

	r.Get("/job-types", h.ListJobTypes)
	r.Get("/subjects", h.ListSubjects)
	r.Get("/states", h.ListStates)
	r.Get("/states/:stateId/cities", h.ListCities)

	r.Get("/skill-categories", h.ListCategories)
	r.Get("/skill-categories/:categoryId/skills", h.SkillsByCategory)
	r.Get("/skills", h.ListSkills)
	r.Get("/skills/:id", h.GetSkill)
	r.Get("/skills/:skillId/sub-skills", h.ListSubSkills)
}
