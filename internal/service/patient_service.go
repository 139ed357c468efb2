package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// PatientDetail is a patient together with their appointment history.
type PatientDetail struct {
	Patient      domain.Patient
	Appointments []AppointmentView
}

// PatientService manages patient records.
type PatientService struct {
	patients     repository.PatientRepository
	appointments *AppointmentService
}

// NewPatientService builds the service.
func NewPatientService(patients repository.PatientRepository, appointments *AppointmentService) *PatientService {
	return &PatientService{patients: patients, appointments: appointments}
}

// PatientInput carries the mutable patient fields.
type PatientInput struct {
	Name     string
	Email    *string
	Phone    *string
	DoctorID *int64
}

// Create registers a patient.
func (s *PatientService) Create(ctx context.Context, input PatientInput) (*domain.Patient, error) {
	patient := &domain.Patient{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		DoctorID: input.DoctorID,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// List returns all patients.
func (s *PatientService) List(ctx context.Context) ([]domain.Patient, error) {
	return s.patients.List(ctx)
}

// Get returns a patient with their appointments, statuses resolved.
func (s *PatientService) Get(ctx context.Context, id int64) (*PatientDetail, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": id})
		}
		return nil, err
	}
	appointments, err := s.appointments.ListByPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PatientDetail{Patient: *patient, Appointments: appointments}, nil
}

// Update replaces a patient's mutable fields.
func (s *PatientService) Update(ctx context.Context, id int64, input PatientInput) (*domain.Patient, error) {
	patient := &domain.Patient{
		ID:       id,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		DoctorID: input.DoctorID,
	}
	if err := s.patients.Update(ctx, patient); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": id})
		}
		return nil, err
	}
	return patient, nil
}

// Delete removes a patient record.
func (s *PatientService) Delete(ctx context.Context, id int64) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("patient", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
