package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// MedicalRecordService manages medical notes.
type MedicalRecordService struct {
	records repository.MedicalRecordRepository
}

// NewMedicalRecordService builds the service.
func NewMedicalRecordService(records repository.MedicalRecordRepository) *MedicalRecordService {
	return &MedicalRecordService{records: records}
}

// MedicalRecordCreateInput carries the fields for a new note.
type MedicalRecordCreateInput struct {
	PatientID int64
	DoctorID  *int64
	Notes     string
}

// Create stores a note. The doctor defaults to the caller when the
// request does not name one.
func (s *MedicalRecordService) Create(ctx context.Context, actor domain.Identity, input MedicalRecordCreateInput) (*domain.MedicalRecord, error) {
	doctorID := input.DoctorID
	if doctorID == nil {
		id := actor.ID
		doctorID = &id
	}

	record := &domain.MedicalRecord{
		PatientID: input.PatientID,
		DoctorID:  doctorID,
		Notes:     input.Notes,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByPatient returns a patient's notes, newest first.
func (s *MedicalRecordService) ListByPatient(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error) {
	return s.records.ListByPatient(ctx, patientID)
}

// UpdateNotes replaces the text of an existing note.
func (s *MedicalRecordService) UpdateNotes(ctx context.Context, id int64, notes string) (*domain.MedicalRecord, error) {
	record := &domain.MedicalRecord{ID: id, Notes: notes}
	if err := s.records.UpdateNotes(ctx, record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("medical record", map[string]any{"id": id})
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a note.
func (s *MedicalRecordService) Delete(ctx context.Context, id int64) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("medical record", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
