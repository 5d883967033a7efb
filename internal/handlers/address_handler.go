package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	address, err := h.addressService.Create(p, userID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, address)
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	addresses, paging, err := h.addressService.List(p, userID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, addresses, paging)
}

func (h *AddressHandler) Get(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	addressID, err := paramUUID(c, "addressId", "Address")
	if err != nil {
		return dto.Error(c, err)
	}

	address, err := h.addressService.Get(p, userID, addressID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, address)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	addressID, err := paramUUID(c, "addressId", "Address")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.UpdateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	address, err := h.addressService.Update(p, userID, addressID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, address)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	addressID, err := paramUUID(c, "addressId", "Address")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.addressService.Delete(p, userID, addressID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "address deleted"})
}
