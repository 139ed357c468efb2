package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// PatientsHandler manages patient endpoints.
type PatientsHandler struct {
	service *service.PatientService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patientService *service.PatientService) *PatientsHandler {
	return &PatientsHandler{service: patientService}
}

// List handles GET /patients.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	patients, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PatientSummary, 0, len(patients))
	for i := range patients {
		items = append(items, patientSummary(&patients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /patients.
func (h *PatientsHandler) Create(c *fiber.Ctx) error {
	var req dto.PatientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	patient, err := h.service.Create(c.Context(), patientInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": patientSummary(patient)})
}

// Get handles GET /patients/:id.
func (h *PatientsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	resp := dto.PatientDetail{
		PatientSummary: patientSummary(&detail.Patient),
		Appointments:   make([]dto.AppointmentSummary, 0, len(detail.Appointments)),
	}
	for _, view := range detail.Appointments {
		resp.Appointments = append(resp.Appointments, appointmentSummary(view))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Update handles PUT /patients/:id.
func (h *PatientsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.PatientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	patient, err := h.service.Update(c.Context(), id, patientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patientSummary(patient)})
}

// Delete handles DELETE /patients/:id.
func (h *PatientsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFound("resource", nil)
	}
	return id, nil
}

func patientInput(req dto.PatientRequest) service.PatientInput {
	return service.PatientInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		DoctorID: req.DoctorID,
	}
}

func patientSummary(patient *domain.Patient) dto.PatientSummary {
	return dto.PatientSummary{
		ID:       patient.ID,
		Name:     patient.Name,
		Email:    patient.Email,
		Phone:    patient.Phone,
		DoctorID: patient.DoctorID,
	}
}
