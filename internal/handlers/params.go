package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
)

// paramUUID parses a path identifier. A malformed id reads the same as
// a missing entity.
func paramUUID(c *fiber.Ctx, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.NotFound(what + " not found")
	}
	return id, nil
}

const maxImageSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

func validateImageFile(file *multipart.FileHeader) error {
	if file.Size > maxImageSize {
		return apperr.Validation(apperr.FieldError{
			Path: "file", Message: "image size must be less than 10MB",
		})
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return apperr.Validation(apperr.FieldError{
			Path: "file", Message: "invalid image format, only JPEG, PNG and WebP are allowed",
		})
	}
	return nil
}
