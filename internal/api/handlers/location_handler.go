package handlers

import (
	"errors"

	"remote-pantry/domain"
	"remote-pantry/internal/api/presenters"
	"remote-pantry/pkg/location"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	LocationHandler interface {
		GetLocations(c *fiber.Ctx) error
		AddLocation(c *fiber.Ctx) error
		RenameLocation(c *fiber.Ctx) error
	}

	locationHandler struct {
		locationService location.LocationService
		validator       *validator.Validate
	}
)

func NewLocationHandler(locationService location.LocationService, validator *validator.Validate) LocationHandler {
	return &locationHandler{
		locationService: locationService,
		validator:       validator,
	}
}

func (h *locationHandler) GetLocations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.locationService.GetLocations(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLocations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLocations)
}

func (h *locationHandler) AddLocation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.AddLocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLocation, err)
	}

	res, err := h.locationService.AddLocation(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrLocationExists) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedAddLocation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddLocation)
}

func (h *locationHandler) RenameLocation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := parseID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRenameLocation, err)
	}

	req := new(domain.RenameLocationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRenameLocation, err)
	}

	res, err := h.locationService.RenameLocation(c.Context(), id, *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedRenameLocation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRenameLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRenameLocation)
}
