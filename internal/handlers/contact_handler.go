package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	contact, err := h.contactService.Create(p, userID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, contact)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	contacts, paging, err := h.contactService.List(p, userID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, contacts, paging)
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	contactID, err := paramUUID(c, "contactId", "Contact")
	if err != nil {
		return dto.Error(c, err)
	}

	contact, err := h.contactService.Get(p, userID, contactID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, contact)
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	contactID, err := paramUUID(c, "contactId", "Contact")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	contact, err := h.contactService.Update(p, userID, contactID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}
	contactID, err := paramUUID(c, "contactId", "Contact")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.contactService.Delete(p, userID, contactID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "contact deleted"})
}
