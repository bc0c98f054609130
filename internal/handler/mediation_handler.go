package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ceasefire/internal/domain"
	"ceasefire/internal/middleware"
	"ceasefire/internal/service/mediation"
)

type MediationHandler struct {
	mediationService mediation.Service
}

func NewMediationHandler(mediationService mediation.Service) *MediationHandler {
	return &MediationHandler{mediationService: mediationService}
}

func (h *MediationHandler) Create(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.ProposeMediationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.mediationService.Propose(c.Context(), current, input)
	if err != nil {
		return mapMediationError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *MediationHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.mediationService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MediationHandler) ListByFight(c *fiber.Ctx) error {
	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	requests, err := h.mediationService.ListByFight(c.Context(), fightID)
	if err != nil {
		return mapMediationError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"requests": requests})
}

func (h *MediationHandler) Get(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.mediationService.GetByID(c.Context(), requestID)
	if err != nil {
		return mapMediationError(err)
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *MediationHandler) Approve(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.mediationService.Approve(c.Context(), current, requestID)
	if err != nil {
		return mapMediationError(err)
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *MediationHandler) Respond(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.RespondMediationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.mediationService.Respond(c.Context(), current, requestID, input); err != nil {
		return mapMediationError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Response recorded"})
}

func mapMediationError(err error) error {
	switch {
	case errors.Is(err, mediation.ErrRequestNotFound):
		return middleware.NotFound("Mediator request not found")
	case errors.Is(err, mediation.ErrFightNotFound):
		return middleware.NotFound("Fight not found")
	case errors.Is(err, mediation.ErrFightResolved):
		return middleware.Conflict("Fight is already resolved")
	case errors.Is(err, mediation.ErrRequestClosed):
		return middleware.Conflict("Mediator request is closed")
	case errors.Is(err, mediation.ErrNotParty):
		return middleware.Forbidden("You are not a party to this fight")
	case errors.Is(err, mediation.ErrNotCreator):
		return middleware.Forbidden("Only the fight creator may respond to a request")
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return middleware.BadRequest(vErr.Error())
	}

	return err
}
