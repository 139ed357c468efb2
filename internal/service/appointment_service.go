package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// invalidStatusMessage is the wire message for rejected status writes.
const invalidStatusMessage = "Invalid status value"

// AppointmentView is an appointment with its resolved lifecycle state.
type AppointmentView struct {
	Appointment domain.Appointment
	Status      domain.Status
}

// AppointmentService manages the appointment lifecycle. Status
// resolution happens on every read; explicit writes are validated
// against the closed status set and never fall back to derivation.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	dispatcher   events.Dispatcher
	now          func() time.Time
}

// NewAppointmentService builds the service.
func NewAppointmentService(appointments repository.AppointmentRepository, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// AppointmentCreateInput carries the fields for a new appointment.
type AppointmentCreateInput struct {
	PatientID int64
	DoctorID  *int64
	Date      time.Time
	Time      string
	Status    string
}

// Create registers an appointment. Status defaults to scheduled; an
// explicit status must be a member of the known set.
func (s *AppointmentService) Create(ctx context.Context, actor domain.Identity, input AppointmentCreateInput) (*AppointmentView, error) {
	status := domain.StatusScheduled
	if input.Status != "" {
		parsed, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(invalidStatusMessage, map[string]any{"status": input.Status})
		}
		status = parsed
	}

	stored := string(status)
	date := input.Date
	appt := &domain.Appointment{
		PatientID:    input.PatientID,
		DoctorID:     input.DoctorID,
		Date:         &date,
		Time:         input.Time,
		StoredStatus: &stored,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAppointmentCreated,
		SubjectID: appt.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: s.now(),
		Payload: events.AppointmentCreatedPayload{
			PatientID: appt.PatientID,
			DoctorID:  appt.DoctorID,
			Date:      date.Format("2006-01-02"),
			Time:      appt.Time,
			Status:    status,
		},
	})
	return &AppointmentView{Appointment: *appt, Status: status}, nil
}

// List returns all appointments with resolved statuses.
func (s *AppointmentService) List(ctx context.Context) ([]AppointmentView, error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(appointments), nil
}

// ListByPatient returns a patient's appointments with resolved statuses.
func (s *AppointmentService) ListByPatient(ctx context.Context, patientID int64) ([]AppointmentView, error) {
	appointments, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(appointments), nil
}

// ListToday returns today's appointments with resolved statuses.
func (s *AppointmentService) ListToday(ctx context.Context) ([]AppointmentView, error) {
	appointments, err := s.appointments.ListToday(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(appointments), nil
}

// UpdateStatus records an explicit status decision. The submitted value
// must be a member of the known set; derivation is a read-time
// convenience only and never applies on the write path.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor domain.Identity, id int64, rawStatus string) (*AppointmentView, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, apperrors.NewValidationError(invalidStatusMessage, map[string]any{"status": rawStatus})
	}

	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
		}
		return nil, err
	}
	oldStatus := domain.ResolveStatus(*appt, s.now())

	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
		}
		return nil, err
	}

	stored := string(status)
	appt.StoredStatus = &stored

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAppointmentStatusChanged,
		SubjectID: appt.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: s.now(),
		Payload: events.AppointmentStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return &AppointmentView{Appointment: *appt, Status: status}, nil
}

func (s *AppointmentService) resolveAll(appointments []domain.Appointment) []AppointmentView {
	now := s.now()
	views := make([]AppointmentView, 0, len(appointments))
	for _, appt := range appointments {
		views = append(views, AppointmentView{
			Appointment: appt,
			Status:      domain.ResolveStatus(appt, now),
		})
	}
	return views
}

func (s *AppointmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
