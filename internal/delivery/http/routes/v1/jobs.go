package v1

import (
	"levelminds/internal/delivery/http/handler"
	"levelminds/internal/delivery/http/middleware"
	"levelminds/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts the job board. Listing and reading are open to every role; the
// student list is filtered by matching inside the handler.
func RegisterJobs(r fiber.Router, jobs *handler.JobHandler) {
	if r == nil || jobs == nil {
		return
	}

	schoolOnly := middleware.RequireRole(user.RoleSchool)

	r.Get("/", jobs.List)
	r.Get("/:id", jobs.Get)
	r.Post("/", schoolOnly, jobs.Create)
	r.Put("/:id", schoolOnly, jobs.Update)
	r.Post("/:jobId/apply", middleware.RequireRole(user.RoleStudent), jobs.Apply)
}
