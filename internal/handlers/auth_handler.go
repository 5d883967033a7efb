package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	resp, err := h.authService.GoogleSignIn(&req)
	if err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Error(c, apperr.Validation(apperr.FieldError{Message: "invalid request body"}))
	}

	if err := h.authService.Logout(&req); err != nil {
		return dto.Error(c, err)
	}
	return dto.JSON(c, fiber.StatusOK, fiber.Map{"message": "logged out"})
}
