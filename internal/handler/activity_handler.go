package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ceasefire/internal/domain"
	"ceasefire/internal/middleware"
	"ceasefire/internal/service/activity"
)

type ActivityHandler struct {
	activityService activity.Service
}

func NewActivityHandler(activityService activity.Service) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	params := getPaginationParams(c)

	result, err := h.activityService.List(c.Context(), fightID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ActivityHandler) AddComment(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	entry, err := h.activityService.AddComment(c.Context(), current, fightID, input)
	if err != nil {
		return mapActivityError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *ActivityHandler) AddModeration(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	var input domain.ModerationActionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	entry, err := h.activityService.AddModeration(c.Context(), current, fightID, input)
	if err != nil {
		return mapActivityError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func mapActivityError(err error) error {
	switch {
	case errors.Is(err, activity.ErrFightNotFound):
		return middleware.NotFound("Fight not found")
	case errors.Is(err, activity.ErrNotMediator):
		return middleware.Forbidden("Only the assigned mediator may take moderation actions")
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return middleware.BadRequest(vErr.Error())
	}

	return err
}
