package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// AppointmentsHandler manages appointment endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// List handles GET /appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appointmentSummaries(views)})
}

// Create handles POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PatientID == 0 || req.Date == "" || req.Time == "" {
		return apperrors.NewValidationError("patient_id, date, time required", nil)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": req.Date})
	}

	view, err := h.service.Create(c.Context(), actor, service.AppointmentCreateInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": appointmentSummary(*view)})
}

// UpdateStatus handles PATCH /appointments/:id.
func (h *AppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewNotFound("appointment", nil)
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	view, err := h.service.UpdateStatus(c.Context(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appointmentSummary(*view)})
}

func appointmentSummary(view service.AppointmentView) dto.AppointmentSummary {
	summary := dto.AppointmentSummary{
		ID:          view.Appointment.ID,
		PatientID:   view.Appointment.PatientID,
		DoctorID:    view.Appointment.DoctorID,
		Time:        view.Appointment.Time,
		Status:      string(view.Status),
		PatientName: view.Appointment.PatientName,
	}
	if view.Appointment.Date != nil {
		summary.Date = view.Appointment.Date.Format("2006-01-02")
	}
	return summary
}

func appointmentSummaries(views []service.AppointmentView) []dto.AppointmentSummary {
	items := make([]dto.AppointmentSummary, 0, len(views))
	for _, view := range views {
		items = append(items, appointmentSummary(view))
	}
	return items
}
