package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/patient-booking/internal/api/dto"
	"github.com/spec-kit/patient-booking/internal/auth"
	"github.com/spec-kit/patient-booking/internal/catalog"
	"github.com/spec-kit/patient-booking/internal/domain"
	"github.com/spec-kit/patient-booking/internal/service"
	apperrors "github.com/spec-kit/patient-booking/pkg/util/errorutil"
)

// AppointmentsHandler exposes the intake flow endpoints.
type AppointmentsHandler struct {
	intake *service.IntakeService
	cache  *catalog.Cache
	logger *zap.Logger
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(intakeService *service.IntakeService, cache *catalog.Cache, logger *zap.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{intake: intakeService, cache: cache, logger: logger}
}

// Create handles POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.AppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	reference, err := h.intake.Submit(c.UserContext(), req)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusAccepted).JSON(dto.AppointmentAccepted{
		Reference: reference,
		Message:   "Appointment booked successfully! You will receive a confirmation email shortly.",
	})
}

// Catalog handles GET /appointments/catalog.
func (h *AppointmentsHandler) Catalog(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if payload, ok := h.cache.Get(ctx); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}

	cat := h.intake.Catalog()
	response := dto.CatalogResponse{}
	for _, name := range cat.Departments() {
		doctors, _ := cat.Doctors(name)
		response.Departments = append(response.Departments, dto.CatalogDepartment{
			Name:    name,
			Doctors: doctors,
		})
	}
	for _, g := range domain.Genders() {
		response.Genders = append(response.Genders, string(g))
	}
	for _, p := range domain.VideoPlatforms() {
		response.Platforms = append(response.Platforms, string(p))
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	h.cache.Set(ctx, payload)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// Prefill handles GET /appointments/prefill for signed-in patients.
func (h *AppointmentsHandler) Prefill(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fullName := principal.FirstName
	if principal.LastName != "" {
		if fullName != "" {
			fullName += " "
		}
		fullName += principal.LastName
	}

	return c.JSON(dto.PrefillResponse{
		FullName: fullName,
		Email:    principal.Email,
	})
}
