package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storyverse/story-service/internal/middleware"
)

func RegisterRoutes(app *fiber.App, h *StoryHandler, guard *middleware.Guard) {
	stories := app.Group("/api/stories")

	stories.Get("/", guard.Require(middleware.AuthenticatedWrite), h.List)
	stories.Post("/", guard.Require(middleware.AuthenticatedWrite), h.Create)

	stories.Get("/:id", guard.Require(middleware.OwnerOnlyWrite), h.Retrieve)
	stories.Put("/:id", guard.Require(middleware.OwnerOnlyWrite), h.Update)
	stories.Patch("/:id", guard.Require(middleware.OwnerOnlyWrite), h.Update)
	stories.Delete("/:id", guard.Require(middleware.OwnerOnlyWrite), h.Delete)
}
