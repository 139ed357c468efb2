package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

type fakeAppointmentRepo struct {
	appointments  map[int64]*domain.Appointment
	nextID        int64
	statusWrites  int
	lastStatusSet domain.Status
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment), nextID: 1}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) error {
	appt.ID = r.nextID
	r.nextID++
	copied := *appt
	r.appointments[appt.ID] = &copied
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeAppointmentRepo) List(_ context.Context) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(r.appointments))
	for _, appt := range r.appointments {
		out = append(out, *appt)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByPatient(_ context.Context, patientID int64) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range r.appointments {
		if appt.PatientID == patientID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListToday(_ context.Context) ([]domain.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.Status) error {
	appt, ok := r.appointments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	r.statusWrites++
	r.lastStatusSet = status
	stored := string(status)
	appt.StoredStatus = &stored
	return nil
}

func (r *fakeAppointmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.appointments)), nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testActor() domain.Identity {
	return domain.Identity{ID: 3, Name: "Front Desk", Email: "desk@example.com", Role: domain.RoleReceptionist}
}

func TestAppointmentCreateDefaultsToScheduled(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewAppointmentService(repo, events.NewInMemoryDispatcher())

	view, err := svc.Create(context.Background(), testActor(), AppointmentCreateInput{
		PatientID: 10,
		Date:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local),
		Time:      "10:30",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Status != domain.StatusScheduled {
		t.Errorf("status = %q, want scheduled", view.Status)
	}
	stored := repo.appointments[view.Appointment.ID]
	if stored.StoredStatus == nil || *stored.StoredStatus != "scheduled" {
		t.Errorf("stored status = %v, want scheduled", stored.StoredStatus)
	}
}

func TestAppointmentCreateRejectsUnknownStatus(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewAppointmentService(repo, nil)

	_, err := svc.Create(context.Background(), testActor(), AppointmentCreateInput{
		PatientID: 10,
		Date:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local),
		Time:      "10:30",
		Status:    "bogus",
	})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 400 {
		t.Fatalf("Create(bogus status) = %v, want 400 DomainError", err)
	}
	if len(repo.appointments) != 0 {
		t.Error("appointment persisted despite invalid status")
	}
}

func TestUpdateStatusRejectsUnknownValueWithoutDerivation(t *testing.T) {
	repo := newFakeAppointmentRepo()
	date := time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)
	repo.appointments[1] = &domain.Appointment{ID: 1, PatientID: 10, Date: &date, Time: "09:00"}
	repo.nextID = 2
	svc := NewAppointmentService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), testActor(), 1, "bogus")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error type %T", err)
	}
	if domainErr.HTTPStatus != 400 || domainErr.Message != "Invalid status value" {
		t.Errorf("got status=%d message=%q", domainErr.HTTPStatus, domainErr.Message)
	}
	// A rejected write must not fall through to time-based derivation.
	if repo.statusWrites != 0 {
		t.Error("status was written despite invalid value")
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc := NewAppointmentService(newFakeAppointmentRepo(), nil)

	_, err := svc.UpdateStatus(context.Background(), testActor(), 99, "cancelled")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 404 {
		t.Errorf("UpdateStatus(missing) = %v, want 404 DomainError", err)
	}
}

func TestUpdateStatusNormalizesAndPersists(t *testing.T) {
	repo := newFakeAppointmentRepo()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	repo.appointments[1] = &domain.Appointment{ID: 1, PatientID: 10, Date: &date, Time: "09:00"}
	repo.nextID = 2
	svc := NewAppointmentService(repo, events.NewInMemoryDispatcher())

	view, err := svc.UpdateStatus(context.Background(), testActor(), 1, "CANCELLED")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if view.Status != domain.StatusCancelled {
		t.Errorf("status = %q, want cancelled", view.Status)
	}
	if repo.lastStatusSet != domain.StatusCancelled {
		t.Errorf("persisted %q, want cancelled", repo.lastStatusSet)
	}
}

func TestListResolvesStatuses(t *testing.T) {
	repo := newFakeAppointmentRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)
	cancelled := "cancelled"

	repo.appointments[1] = &domain.Appointment{ID: 1, PatientID: 10, Date: &yesterday, Time: "08:00"}
	repo.appointments[2] = &domain.Appointment{ID: 2, PatientID: 10, Date: &tomorrow, Time: "08:00"}
	repo.appointments[3] = &domain.Appointment{ID: 3, PatientID: 10, Date: &yesterday, Time: "08:00", StoredStatus: &cancelled}
	repo.nextID = 4

	svc := NewAppointmentService(repo, nil)
	svc.now = fixedClock(now)

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := make(map[int64]domain.Status, len(views))
	for _, view := range views {
		got[view.Appointment.ID] = view.Status
	}

	want := map[int64]domain.Status{
		1: domain.StatusCompleted,
		2: domain.StatusScheduled,
		3: domain.StatusCancelled,
	}
	for id, status := range want {
		if got[id] != status {
			t.Errorf("appointment %d: status = %q, want %q", id, got[id], status)
		}
	}
}

func TestStatusChangeEventCarriesOldAndNewStatus(t *testing.T) {
	repo := newFakeAppointmentRepo()
	date := time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)
	repo.appointments[1] = &domain.Appointment{ID: 1, PatientID: 10, Date: &date, Time: "09:00"}
	repo.nextID = 2

	dispatcher := events.NewInMemoryDispatcher()
	var captured []events.Event
	dispatcher.Subscribe(events.EventAppointmentStatusChanged, func(_ context.Context, event events.Event) error {
		captured = append(captured, event)
		return nil
	})

	svc := NewAppointmentService(repo, dispatcher)
	svc.now = fixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	if _, err := svc.UpdateStatus(context.Background(), testActor(), 1, "cancelled"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(captured) != 1 {
		t.Fatalf("captured %d events, want 1", len(captured))
	}
	payload, ok := captured[0].Payload.(events.AppointmentStatusChangedPayload)
	if !ok {
		t.Fatalf("payload type %T", captured[0].Payload)
	}
	// The 2020 date is long past, so the derived old status is completed.
	if payload.OldStatus != domain.StatusCompleted || payload.NewStatus != domain.StatusCancelled {
		t.Errorf("payload = %+v", payload)
	}
}
