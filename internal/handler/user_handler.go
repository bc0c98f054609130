package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ceasefire/internal/domain"
	"ceasefire/internal/middleware"
	"ceasefire/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	return c.Status(fiber.StatusOK).JSON(current)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.Update(c.Context(), current.ID, input)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return middleware.BadRequest(vErr.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
