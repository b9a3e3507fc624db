package v1

import (
	"levelminds/internal/delivery/http/handler"
	"levelminds/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Job          *handler.JobHandler
	School       *handler.SchoolHandler
	Student      *handler.StudentHandler
	Skills       *handler.PersonalSkillHandler
	Admin        *handler.AdminHandler
	MasterData   *handler.MasterDataHandler
	Notification *handler.NotificationHandler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("", authMw.Middleware())

	if h.Profile != nil {
		protected.Get("/profile/me", h.Profile.Me)
	}
	RegisterStudents(protected.Group("/students"), h.Profile, h.Student, h.Skills)
	RegisterSchools(protected.Group("/schools"), h.Profile, h.School)
	RegisterJobs(protected.Group("/jobs"), h.Job)
	RegisterMasterData(protected.Group("/master-data"), h.MasterData)
	RegisterAdmin(protected.Group("/admin"), h.Admin, h.MasterData)

	if h.Notification != nil {
		h.Notification.RegisterRoutes(protected.Group("/notifications"))
	}
}
