package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/patient-booking/internal/api/dto"
	"github.com/spec-kit/patient-booking/internal/service"
	apperrors "github.com/spec-kit/patient-booking/pkg/util/errorutil"
)

// AuthHandler exposes credential session endpoints.
type AuthHandler struct {
	accounts *service.AccountService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accountService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	account, token, exp, err := h.accounts.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserFromAccount(account),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
