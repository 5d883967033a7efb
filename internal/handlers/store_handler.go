package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

func (h *StoreHandler) Create(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.StoreRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	store, err := h.storeService.Create(p, userID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, store)
}

func (h *StoreHandler) List(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	stores, paging, err := h.storeService.List(p, userID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, stores, paging)
}

func (h *StoreHandler) Get(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	storeID, err := paramUUID(c, "storeId", "Store")
	if err != nil {
		return dto.Error(c, err)
	}

	store, err := h.storeService.Get(p, userID, storeID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, store)
}

func (h *StoreHandler) Update(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	storeID, err := paramUUID(c, "storeId", "Store")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.StoreRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	store, err := h.storeService.Update(p, userID, storeID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, store)
}

func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	storeID, err := paramUUID(c, "storeId", "Store")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.storeService.Delete(c.Context(), p, userID, storeID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "store deleted"})
}
