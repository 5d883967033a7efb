package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type ColorHandler struct {
	colorService *services.ColorService
}

func NewColorHandler(colorService *services.ColorService) *ColorHandler {
	return &ColorHandler{colorService: colorService}
}

func (h *ColorHandler) chain(c *fiber.Ctx) (*principal.Principal, uuid.UUID, uuid.UUID, error) {
	p, err := principal.FromContext(c)
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, err
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, err
	}
	storeID, err := paramUUID(c, "storeId", "Store")
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, err
	}
	return p, userID, storeID, nil
}

func (h *ColorHandler) Create(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.ColorRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	color, err := h.colorService.Create(p, userID, storeID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, color)
}

func (h *ColorHandler) List(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	colors, paging, err := h.colorService.List(p, userID, storeID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, colors, paging)
}

func (h *ColorHandler) Get(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	colorID, err := paramUUID(c, "colorId", "Color")
	if err != nil {
		return dto.Error(c, err)
	}

	color, err := h.colorService.Get(p, userID, storeID, colorID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, color)
}

func (h *ColorHandler) Update(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	colorID, err := paramUUID(c, "colorId", "Color")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.ColorRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	color, err := h.colorService.Update(p, userID, storeID, colorID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, color)
}

func (h *ColorHandler) Delete(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	colorID, err := paramUUID(c, "colorId", "Color")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.colorService.Delete(p, userID, storeID, colorID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "color deleted"})
}
