package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/patient-booking/internal/api/dto"
	"github.com/spec-kit/patient-booking/internal/service"
	apperrors "github.com/spec-kit/patient-booking/pkg/util/errorutil"
)

// UsersHandler exposes the account endpoints. Response bodies follow the
// `{user, message}` / `{users, message}` contract the web client expects, so
// errors are shaped here instead of the generic error middleware.
type UsersHandler struct {
	accounts *service.AccountService
	logger   *zap.Logger
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accountService *service.AccountService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{accounts: accountService, logger: logger}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accounts.List(c.UserContext())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"users":   []dto.UserResponse{},
			"message": service.MsgListFailed,
		})
	}
	return c.JSON(fiber.Map{"users": dto.UsersFromAccounts(accounts)})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"user":    nil,
			"message": "invalid payload",
		})
	}

	account, err := h.accounts.Register(c.UserContext(), req)
	if err != nil {
		domainErr := apperrors.ToDomainError(err)

		message := domainErr.Message
		if domainErr.HTTPStatus >= http.StatusInternalServerError {
			h.logger.Error("user creation failed", zap.Error(domainErr))
			message = service.MsgCreateFailed
		}

		response := fiber.Map{"user": nil, "message": message}
		if len(domainErr.Details) > 0 {
			response["errors"] = domainErr.Details
		}
		return c.Status(domainErr.HTTPStatus).JSON(response)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":    dto.UserFromAccount(account),
		"message": service.MsgUserCreated,
	})
}
