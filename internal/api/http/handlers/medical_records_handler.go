package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// MedicalRecordsHandler manages medical note endpoints.
type MedicalRecordsHandler struct {
	service *service.MedicalRecordService
}

// NewMedicalRecordsHandler constructs handler.
func NewMedicalRecordsHandler(recordService *service.MedicalRecordService) *MedicalRecordsHandler {
	return &MedicalRecordsHandler{service: recordService}
}

// ListByPatient handles GET /medical-records/patient/:patientId.
func (h *MedicalRecordsHandler) ListByPatient(c *fiber.Ctx) error {
	patientID, err := strconv.ParseInt(c.Params("patientId"), 10, 64)
	if err != nil {
		return apperrors.NewNotFound("patient", nil)
	}
	records, err := h.service.ListByPatient(c.Context(), patientID)
	if err != nil {
		return err
	}
	items := make([]dto.MedicalRecordSummary, 0, len(records))
	for i := range records {
		items = append(items, recordSummary(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /medical-records.
func (h *MedicalRecordsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateMedicalRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PatientID == 0 || req.Notes == "" {
		return apperrors.NewValidationError("patient_id and notes required", nil)
	}

	record, err := h.service.Create(c.Context(), actor, service.MedicalRecordCreateInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": recordSummary(record)})
}

// Update handles PUT /medical-records/:id.
func (h *MedicalRecordsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMedicalRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Notes == "" {
		return apperrors.NewValidationError("notes required", nil)
	}

	record, err := h.service.UpdateNotes(c.Context(), id, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recordSummary(record)})
}

// Delete handles DELETE /medical-records/:id.
func (h *MedicalRecordsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func recordSummary(record *domain.MedicalRecord) dto.MedicalRecordSummary {
	return dto.MedicalRecordSummary{
		ID:         record.ID,
		PatientID:  record.PatientID,
		DoctorID:   record.DoctorID,
		DoctorName: record.DoctorName,
		Notes:      record.Notes,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}
