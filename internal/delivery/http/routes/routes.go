package routes

import (
	"levelminds/internal/delivery/http/handler"
	"levelminds/internal/delivery/http/middleware"
	v1 "levelminds/internal/delivery/http/routes/v1"
	"levelminds/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	ws       *ws.Handler
	handlers v1.Handlers
	authMw   *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, handlers v1.Handlers, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, ws: wsHandler, handlers: handlers, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWebsocket(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

// The websocket authenticates from its own query token, outside the bearer middleware.
func (r *Registry) registerWebsocket(app *fiber.App) {
	if r.ws == nil {
		return
	}
	app.Get("/ws/notifications", r.ws.HandleNotifications)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.handlers, r.authMw)
}
