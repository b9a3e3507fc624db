package v1

import (
	"levelminds/internal/delivery/http/handler"
	"levelminds/internal/delivery/http/middleware"
	"levelminds/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterStudents(r fiber.Router, profile *handler.ProfileHandler, student *handler.StudentHandler, skills *handler.PersonalSkillHandler) {
	if r == nil || profile == nil || student == nil {
		return
	}

	r.Use(middleware.RequireRole(user.RoleStudent))

	r.Get("/profile", profile.GetStudent)
	r.Put("/profile", profile.UpdateStudent)
	r.Get("/profile/core-skills-assessments", student.Assessments)
	r.Get("/schedule", student.Schedule)
	r.Get("/applications", student.Applications)
	r.Post("/help", student.Help)

	if skills != nil {
		skills.RegisterRoutes(r.Group("/profile/my-skills"))
	}
}

func RegisterSchools(r fiber.Router, profile *handler.ProfileHandler, school *handler.SchoolHandler) {
	if r == nil || profile == nil || school == nil {
		return
	}

	r.Use(middleware.RequireRole(user.RoleSchool))

	r.Get("/profile", profile.GetSchool)
	r.Put("/profile", profile.UpdateSchool)
	r.Get("/dashboard-metrics", school.Dashboard)
	r.Get("/jobs", school.Jobs)
	r.Get("/jobs/:jobId/applicants", school.Applicants)
	r.Put("/applications/:appId/status", school.UpdateApplicationStatus)
	r.Post("/applications/:appId/schedule-interview", school.ScheduleInterview)
}
