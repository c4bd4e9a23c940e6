package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	autherror "github.com/storyverse/story-service/internal/errors"
	"github.com/storyverse/story-service/internal/middleware"
	"github.com/storyverse/story-service/internal/story/dto"
	"github.com/storyverse/story-service/internal/story/service"
)

type StoryHandler struct {
	storyService *service.StoryService
	logger       *slog.Logger
}

func NewStoryHandler(storyService *service.StoryService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{storyService: storyService, logger: logger}
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	stories, err := h.storyService.List(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromDomainList(stories))
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	var input dto.StoryInput
	if err := c.BodyParser(&input); err != nil {
		return h.respondError(c, autherror.ErrValidation)
	}

	ownerID, _ := c.Locals(middleware.LocalUserID).(string)
	ownerUsername, _ := c.Locals(middleware.LocalUsername).(string)

	story, err := h.storyService.Create(c.UserContext(), ownerID, ownerUsername, input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomain(story))
}

func (h *StoryHandler) Retrieve(c *fiber.Ctx) error {
	story, err := h.storyService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromDomain(story))
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
	var input dto.StoryInput
	if err := c.BodyParser(&input); err != nil {
		return h.respondError(c, autherror.ErrValidation)
	}

	callerID, _ := c.Locals(middleware.LocalUserID).(string)

	story, err := h.storyService.Update(c.UserContext(), c.Params("id"), callerID, input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromDomain(story))
}

func (h *StoryHandler) Delete(c *fiber.Ctx) error {
	callerID, _ := c.Locals(middleware.LocalUserID).(string)

	if err := h.storyService.Delete(c.UserContext(), c.Params("id"), callerID); err != nil {
		return h.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StoryHandler) respondError(c *fiber.Ctx, err error) error {
	kind := autherror.Kind(err)
	message := err.Error()
	if kind == "internal_error" {
		h.logger.Error("story request failed", "path", c.Path(), "error", err)
		message = "internal server error"
	}

	return c.Status(autherror.HTTPStatus(err)).JSON(fiber.Map{
		"kind":  kind,
		"error": message,
	})
}
