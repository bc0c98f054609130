package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ceasefire/internal/domain"
	"ceasefire/internal/middleware"
	"ceasefire/internal/service/fight"
	"ceasefire/internal/service/presence"
)

type FightHandler struct {
	fightService    fight.Service
	presenceService presence.Service
}

func NewFightHandler(fightService fight.Service, presenceService presence.Service) *FightHandler {
	return &FightHandler{
		fightService:    fightService,
		presenceService: presenceService,
	}
}

func (h *FightHandler) Create(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateFightInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.fightService.Create(c.Context(), current, input)
	if err != nil {
		return mapFightError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *FightHandler) List(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	view, ok := domain.ParseFightView(c.Query("view"))
	if !ok {
		return middleware.BadRequest("Unknown view filter")
	}

	fights, err := h.fightService.List(c.Context(), current, view)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"fights": fights})
}

func (h *FightHandler) Get(c *fiber.Ctx) error {
	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	found, err := h.fightService.GetByID(c.Context(), fightID)
	if err != nil {
		return mapFightError(err)
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *FightHandler) Accept(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	var input domain.AcceptFightInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	accepted, err := h.fightService.Accept(c.Context(), current, fightID, input)
	if err != nil {
		return mapFightError(err)
	}

	return c.Status(fiber.StatusOK).JSON(accepted)
}

func (h *FightHandler) TakeMediation(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	updated, err := h.fightService.TakeMediation(c.Context(), current, fightID)
	if err != nil {
		return mapFightError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *FightHandler) Resolve(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	var input domain.ResolveFightInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	resolved, err := h.fightService.Resolve(c.Context(), current, fightID, input)
	if err != nil {
		return mapFightError(err)
	}

	return c.Status(fiber.StatusOK).JSON(resolved)
}

func (h *FightHandler) SpectatorHeartbeat(c *fiber.Ctx) error {
	current := middleware.GetCurrentUser(c)
	if current == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	if err := h.presenceService.Heartbeat(c.Context(), fightID, current.ID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Heartbeat recorded"})
}

func (h *FightHandler) SpectatorCount(c *fiber.Ctx) error {
	fightID, err := uuid.Parse(c.Params("fightId"))
	if err != nil {
		return middleware.BadRequest("Invalid fight ID")
	}

	count, err := h.presenceService.Count(c.Context(), fightID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"spectators": count})
}

func mapFightError(err error) error {
	switch {
	case errors.Is(err, fight.ErrFightNotFound):
		return middleware.NotFound("Fight not found")
	case errors.Is(err, fight.ErrNotInvited):
		return middleware.Forbidden("You are not the invited opponent")
	case errors.Is(err, fight.ErrAlreadyAccepted):
		return middleware.Conflict("Fight invitation already accepted")
	case errors.Is(err, fight.ErrAlreadyResolved):
		return middleware.Conflict("Fight is already resolved")
	case errors.Is(err, fight.ErrUpdateConflict):
		return middleware.Conflict("Fight was modified concurrently, please retry")
	case errors.Is(err, fight.ErrMediationNotApproved):
		return middleware.Forbidden("Mediation has not been approved by both parties")
	case errors.Is(err, fight.ErrNotResolver):
		return middleware.Forbidden("Only the creator or the assigned mediator may resolve a fight")
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return middleware.BadRequest(vErr.Error())
	}

	return err
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
