package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) chain(c *fiber.Ctx) (*principal.Principal, uuid.UUID, uuid.UUID, uuid.UUID, error) {
	p, err := principal.FromContext(c)
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	storeID, err := paramUUID(c, "storeId", "Store")
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	productID, err := paramUUID(c, "productId", "Product")
	if err != nil {
		return nil, uuid.Nil, uuid.Nil, uuid.Nil, err
	}
	return p, userID, storeID, productID, nil
}

// Create accepts one `file` part or many `files` parts.
func (h *ImageHandler) Create(c *fiber.Ctx) error {
	p, userID, storeID, productID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}

	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil && len(form.File["files"]) > 0 {
		headers = form.File["files"]
	} else if file, err := c.FormFile("file"); err == nil {
		headers = []*multipart.FileHeader{file}
	}
	if len(headers) == 0 {
		return dto.Error(c, apperr.Validation(apperr.FieldError{
			Path: "files", Message: "at least one file is required",
		}))
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, header := range headers {
		if err := validateImageFile(header); err != nil {
			return dto.Error(c, err)
		}
		src, err := header.Open()
		if err != nil {
			return dto.Error(c, apperr.Internal("failed to read upload", err))
		}
		defer src.Close()
		files = append(files, services.UploadFile{Name: header.Filename, Reader: src})
	}

	images, err := h.imageService.Create(c.Context(), p, userID, storeID, productID, files)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, images)
}

func (h *ImageHandler) List(c *fiber.Ctx) error {
	p, userID, storeID, productID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	page, limit := dto.PageParams(c)

	images, paging, err := h.imageService.List(p, userID, storeID, productID, page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, images, paging)
}

func (h *ImageHandler) Get(c *fiber.Ctx) error {
	p, userID, storeID, productID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	imageID, err := paramUUID(c, "imageId", "Image")
	if err != nil {
		return dto.Error(c, err)
	}

	image, err := h.imageService.Get(p, userID, storeID, productID, imageID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, image)
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	p, userID, storeID, productID, err := h.chain(c)
	if err != nil {
		return dto.Error(c, err)
	}
	imageID, err := paramUUID(c, "imageId", "Image")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.imageService.Delete(c.Context(), p, userID, storeID, productID, imageID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "image deleted"})
}
