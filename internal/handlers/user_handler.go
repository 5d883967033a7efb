package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}

	user, err := h.userService.Get(p, userID)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	user, err := h.userService.Update(p, userID, &req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}

	if err := h.userService.Delete(c.Context(), p, userID); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return dto.Error(c, err)
	}
	userID, err := paramUUID(c, "userId", "User")
	if err != nil {
		return dto.Error(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{
			Path: "file", Message: "file is required",
		}))
	}
	if err := validateImageFile(file); err != nil {
		return dto.Error(c, err)
	}

	src, err := file.Open()
	if err != nil {
		return dto.Error(c, apperr.Internal("failed to read upload", err))
	}
	defer src.Close()

	user, err := h.userService.UpdateAvatar(c.Context(), p, userID, file.Filename, src)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, user)
}

// ListAll is the admin user listing; AdminRequired guards the route.
func (h *UserHandler) ListAll(c *fiber.Ctx) error {
	page, limit := dto.PageParams(c)

	users, paging, err := h.userService.ListAll(page, limit)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSONPaged(c, fiber.StatusOK, users, paging)
}
