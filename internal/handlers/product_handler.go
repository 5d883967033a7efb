package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) chain(c *fiber.Ctx) (*principal.Principal, uuid.UUID, uuid.UUID, error) {
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

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	product, err := h.productService.Create(p, userID, storeID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	products, paging, err := h.productService.List(p, userID, storeID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, products, paging)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	productID, err := paramUUID(c, "productId", "Product")
	if err != nil {
		return dto.Error(c, err)
	}

	product, err := h.productService.Get(p, userID, storeID, productID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	productID, err := paramUUID(c, "productId", "Product")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	product, err := h.productService.Update(p, userID, storeID, productID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	p, userID, storeID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	productID, err := paramUUID(c, "productId", "Product")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.productService.Delete(c.Context(), p, userID, storeID, productID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "product deleted"})
}
