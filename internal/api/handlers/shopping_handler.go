package handlers

import (
	"errors"

	"remote-pantry/domain"
	"remote-pantry/internal/api/presenters"
	"remote-pantry/pkg/pantry"
	"remote-pantry/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		GetShoppingList(c *fiber.Ctx) error
		Restock(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		pantryService pantry.PantryService
		userService   user.UserService
		validator     *validator.Validate
	}
)

func NewShoppingHandler(pantryService pantry.PantryService, userService user.UserService, validator *validator.Validate) ShoppingHandler {
	return &shoppingHandler{
		pantryService: pantryService,
		userService:   userService,
		validator:     validator,
	}
}

func (h *shoppingHandler) GetShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	offset, err := h.userService.GetTimezoneOffset(c.Context(), userID)
	if err != nil {
		offset = 0
	}

	res, err := h.pantryService.GetShoppingList(c.Context(), userID, offset)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

// Restock handles the shopping page submission: checked items are refilled
// with their expiration overrides resolved, delete-checked items just drop
// off the shopping list. A mismatch between the override list and the page's
// item list aborts the whole refill before anything is written.
func (h *shoppingHandler) Restock(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.RestockRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	refilled, err := h.pantryService.Refill(c.Context(), userID, req.RefillIDs, req.ExpOverrides, req.AllIDs)
	if err != nil {
		if errors.Is(err, domain.ErrListLengthMismatch) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedRestock, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRestock, err)
	}

	removed, err := h.pantryService.RemoveFromShopping(c.Context(), userID, req.Removals)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRestock, err)
	}

	res := domain.BatchResult{
		Updated:  refilled.Updated + removed.Updated,
		Failures: append(refilled.Failures, removed.Failures...),
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRestock)
}
