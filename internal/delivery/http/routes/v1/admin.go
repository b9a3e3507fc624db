package v1

import (
	"levelminds/internal/delivery/http/handler"
	"levelminds/internal/delivery/http/middleware"
	"levelminds/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterAdmin(r fiber.Router, admin *handler.AdminHandler, master *handler.MasterDataHandler) {
	if r == nil || admin == nil {
		return
	}

	r.Use(middleware.RequireRole(user.RoleAdmin))

	r.Get("/dashboard-metrics", admin.Dashboard)

	r.Get("/users", admin.ListUsers)
	r.Get("/users/export", admin.ExportUsers)
	r.Put("/users/:id", admin.UpdateUser)
	r.Delete("/users/:id", admin.DeleteUser)

	r.Get("/help-tickets", admin.ListHelpTickets)
	r.Put("/help-tickets/:id/status", admin.UpdateHelpTicket)

	r.Get("/settings/job-matching", admin.GetJobMatching)
	r.Put("/settings/job-matching", admin.SetJobMatching)

	r.Post("/students/:studentUserId/core-skills-assessment", admin.SubmitAssessment)
	r.Get("/students/:studentUserId/core-skills-assessments", admin.StudentAssessments)
	r.Get("/assessments/export", admin.ExportAssessments)

	if master != nil {
		registerAdminMasterData(r, master)
	}
}

func registerAdminMasterData(r fiber.Router, h *handler.MasterDataHandler) {
	r.Post("/job-types", h.CreateJobType)
	r.Put("/job-types/:id", h.UpdateJobType)
	r.Delete("/job-types/:id", h.DeleteJobType)
	r.Put("/job-types/:id/skills", h.SetJobTypeSkills)
	r.Get("/skills/by-job-type/:jobTypeId", h.SkillsByJobType)

	r.Post("/subjects", h.CreateSubject)
	r.Put("/subjects/:id", h.UpdateSubject)
	r.Delete("/subjects/:id", h.DeleteSubject)

	r.Post("/states", h.CreateState)
	r.Delete("/states/:id", h.DeleteState)
	r.Post("/states/:stateId/cities", h.CreateCity)

	r.Post("/skill-categories", h.CreateCategory)
	r.Put("/skill-categories/:id", h.UpdateCategory)
	r.Delete("/skill-categories/:id", h.DeleteCategory)

	r.Post("/skills", h.CreateSkill)
	r.Put("/skills/:id", h.UpdateSkill)
	r.Delete("/skills/:id", h.DeleteSkill)
	r.Post("/skills/:skillId/sub-skills", h.CreateSubSkill)
	r.Put("/sub-skills/:id", h.UpdateSubSkill)
	r.Delete("/sub-skills/:id", h.DeleteSubSkill)
}
