package routes

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterV1 mounts the public routes first. The protected group is a
// prefix middleware, so anything registered after it requires a token.
func (r *Registry) RegisterV1(v1 fiber.Router) {
	if v1 == nil {
		return
	}
	h := r.handlers

	if h.Auth != nil {
		h.Auth.RegisterRoutes(v1.Group("/auth"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(v1)
	}
	if h.Review != nil {
		h.Review.RegisterRoutes(v1)
	}
	if h.Search != nil {
		h.Search.RegisterRoutes(v1)
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(v1)
	}
	if h.WS != nil {
		h.WS.RegisterRoutes(v1)
	}

	if r.authMw == nil {
		return
	}
	protected := v1.Group("", r.authMw.Middleware())

	if h.Auth != nil {
		h.Auth.RegisterProtectedRoutes(protected.Group("/auth"))
	}
	if h.Profile != nil {
		h.Profile.RegisterProtectedRoutes(protected)
	}
	if h.Skill != nil {
		h.Skill.RegisterProtectedRoutes(protected)
	}
	if h.UserSkill != nil {
		h.UserSkill.RegisterRoutes(protected)
	}
	if h.SkillRequest != nil {
		h.SkillRequest.RegisterRoutes(protected)
	}
	if h.Review != nil {
		h.Review.RegisterProtectedRoutes(protected)
	}
}
