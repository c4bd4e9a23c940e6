package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storyverse/story-service/internal/middleware"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, guard *middleware.Guard) {
	api := app.Group("/api", guard.Require(middleware.Open))
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/token/refresh", h.Refresh)
}
