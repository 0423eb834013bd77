package handlers

import (
	"errors"
	"strconv"

	"remote-pantry/domain"
	"remote-pantry/internal/api/presenters"
	"remote-pantry/pkg/pantry"
	"remote-pantry/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PantryHandler interface {
		GetPantry(c *fiber.Ctx) error
		AddFoodstuff(c *fiber.Ctx) error
		GetFoodstuffDetails(c *fiber.Ctx) error
		UpdateFoodstuff(c *fiber.Ctx) error
		UpdatePantry(c *fiber.Ctx) error
		GetExpiringItems(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		UpdateHistory(c *fiber.Ctx) error
	}

	pantryHandler struct {
		pantryService pantry.PantryService
		userService   user.UserService
		validator     *validator.Validate
	}
)

func NewPantryHandler(pantryService pantry.PantryService, userService user.UserService, validator *validator.Validate) PantryHandler {
	return &pantryHandler{
		pantryService: pantryService,
		userService:   userService,
		validator:     validator,
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *pantryHandler) offsetFor(c *fiber.Ctx, userID uint) int {
	offset, err := h.userService.GetTimezoneOffset(c.Context(), userID)
	if err != nil {
		return 0
	}
	return offset
}

func (h *pantryHandler) GetPantry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.pantryService.GetPantry(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPantry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPantry)
}

func (h *pantryHandler) AddFoodstuff(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.AddFoodstuffRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodstuff, err)
	}

	res, err := h.pantryService.AddFoodstuff(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodstuff, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFoodstuff)
}

func (h *pantryHandler) GetFoodstuffDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodstuff, err)
	}

	res, err := h.pantryService.GetFoodstuffByID(c.Context(), id, userID, h.offsetFor(c, userID))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetFoodstuff, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodstuff, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoodstuff)
}

func (h *pantryHandler) UpdateFoodstuff(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodstuff, err)
	}

	req := new(domain.UpdateFoodstuffRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodstuff, err)
	}

	if err := h.pantryService.UpdateFoodstuff(c.Context(), id, *req, userID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateFoodstuff, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodstuff, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateFoodstuff)
}

// UpdatePantry handles the bulk-action form of the pantry page: items
// toggled empty go out of stock, items toggled refill go on the shopping
// list. Both halves report per-item failures without failing the request.
func (h *pantryHandler) UpdatePantry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.UpdatePantryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	emptied, err := h.pantryService.MarkOutOfStock(c.Context(), userID, req.Empty)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePantry, err)
	}
	listed, err := h.pantryService.MarkForShopping(c.Context(), userID, req.Refill)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePantry, err)
	}

	res := domain.BatchResult{
		Updated:  emptied.Updated + listed.Updated,
		Failures: append(emptied.Failures, listed.Failures...),
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePantry)
}

func (h *pantryHandler) GetExpiringItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.pantryService.GetExpiringItems(c.Context(), userID, h.offsetFor(c, userID))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetExpiring, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetExpiring)
}

func (h *pantryHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.pantryService.GetHistory(c.Context(), userID, h.offsetFor(c, userID))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *pantryHandler) UpdateHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.UpdateHistoryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	restocked, err := h.pantryService.ReturnToPantry(c.Context(), userID, req.Restock)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePantry, err)
	}
	listed, err := h.pantryService.MarkForShopping(c.Context(), userID, req.Refill)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePantry, err)
	}

	res := domain.BatchResult{
		Updated:  restocked.Updated + listed.Updated,
		Failures: append(restocked.Failures, listed.Failures...),
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePantry)
}
