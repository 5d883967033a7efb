package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type BannerHandler struct {
	bannerService *services.BannerService
}

func NewBannerHandler(bannerService *services.BannerService) *BannerHandler {
	return &BannerHandler{bannerService: bannerService}
}

func (h *BannerHandler) chain(c *fiber.Ctx) (*principal.Principal, uuid.UUID, uuid.UUID, error) {
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

func (h *BannerHandler) Create(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	banner, err := h.bannerService.Create(p, userID, storeID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, banner)
}

func (h *BannerHandler) List(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	banners, paging, err := h.bannerService.List(p, userID, storeID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, banners, paging)
}

func (h *BannerHandler) Get(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	bannerID, err := paramUUID(c, "bannerId", "Banner")
	if err != nil {
		return dto.Error(c, err)
	}

	banner, err := h.bannerService.Get(p, userID, storeID, bannerID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, banner)
}

func (h *BannerHandler) Update(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	bannerID, err := paramUUID(c, "bannerId", "Banner")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	banner, err := h.bannerService.Update(p, userID, storeID, bannerID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, banner)
}

func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	bannerID, err := paramUUID(c, "bannerId", "Banner")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.bannerService.Delete(p, userID, storeID, bannerID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "banner deleted"})
}
