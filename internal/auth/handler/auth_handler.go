package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/storyverse/story-service/internal/auth/dto"
	"github.com/storyverse/story-service/internal/auth/service"
	autherror "github.com/storyverse/story-service/internal/errors"
)

type AuthHandler struct {
	userService *service.UserService
	logger      *slog.Logger
}

func NewAuthHandler(userService *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return h.respondError(c, autherror.ErrValidation)
	}

	out, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return h.respondError(c, autherror.ErrValidation)
	}

	tokens, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return h.respondError(c, autherror.ErrValidation)
	}

	tokens, err := h.userService.Refresh(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) respondError(c *fiber.Ctx, err error) error {
	kind := autherror.Kind(err)
	message := err.Error()
	if kind == "internal_error" {
		h.logger.Error("auth request failed", "path", c.Path(), "error", err)
		message = "internal server error"
	}

	return c.Status(autherror.HTTPStatus(err)).JSON(fiber.Map{
		"kind":  kind,
		"error": message,
	})
}
