package routes

import (
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups every HTTP entry point. A nil handler leaves its routes
// unregistered.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Search       *handler.SearchHandler
	Skill        *handler.SkillHandler
	UserSkill    *handler.UserSkillHandler
	SkillRequest *handler.SkillRequestHandler
	Review       *handler.ReviewHandler
	WS           *ws.Handler
}

type Registry struct {
	handlers Handlers
	authMw   *middleware.AuthMiddleware
}

func NewRegistry(handlers Handlers, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: handlers, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
	app.Get("/metrics", middleware.MetricsHandler())
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	r.RegisterV1(api.Group("/v1"))
}
