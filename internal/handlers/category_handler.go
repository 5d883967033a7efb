package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) chain(c *fiber.Ctx) (*principal.Principal, uuid.UUID, uuid.UUID, error) {
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

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	category, err := h.categoryService.Create(p, userID, storeID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, category)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	categories, paging, err := h.categoryService.List(p, userID, storeID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, categories, paging)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	categoryID, err := paramUUID(c, "categoryId", "Category")
	if err != nil {
		return dto.Error(c, err)
	}

	category, err := h.categoryService.Get(p, userID, storeID, categoryID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, category)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	categoryID, err := paramUUID(c, "categoryId", "Category")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	category, err := h.categoryService.Update(p, userID, storeID, categoryID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	categoryID, err := paramUUID(c, "categoryId", "Category")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.categoryService.Delete(p, userID, storeID, categoryID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "category deleted"})
}
