package app

import (
	"fmt"
	"strings"

	"levelminds/internal/config"
	"levelminds/internal/delivery/http/handler"
	"levelminds/internal/delivery/http/middleware"
	"levelminds/internal/delivery/http/routes"
	v1 "levelminds/internal/delivery/http/routes/v1"
	"levelminds/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app over c.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects, migrates and wires the service. The cleanup func stops background
// workers and closes connections.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	// Outer layers see the status written by the error middleware.
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	handlers := v1.Handlers{
		Auth:         handler.NewAuthHandler(c.Auth),
		Profile:      handler.NewProfileHandler(c.Profiles),
		Job:          handler.NewJobHandler(c.Jobs, c.Matching, c.Applications),
		School:       handler.NewSchoolHandler(c.Jobs, c.Applications, c.Dashboard),
		Student:      handler.NewStudentHandler(c.Applications, c.Assessments, c.Help),
		Skills:       handler.NewPersonalSkillHandler(c.Skills),
		Admin:        handler.NewAdminHandler(c.Admin, c.Dashboard, c.Help, c.Settings, c.Assessments),
		MasterData:   handler.NewMasterDataHandler(c.MasterData, c.Catalog),
		Notification: handler.NewNotificationHandler(c.Inbox),
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		ws.NewHandler(c.Hub, c.JWT, c.Logger.Named("ws")),
		handlers,
		middleware.NewAuthMiddleware(c.JWT),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
