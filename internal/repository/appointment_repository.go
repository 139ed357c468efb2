package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error)
	ListToday(ctx context.Context) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	Count(ctx context.Context) (int64, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (patient_id, doctor_id, date, time, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.StoredStatus,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	const query = `
        SELECT id, patient_id, doctor_id, date, time, status, created_at, updated_at
        FROM appointments WHERE id=$1`

	var appt domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.Date,
		&appt.Time,
		&appt.StoredStatus,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	const query = `
        SELECT a.id, a.patient_id, a.doctor_id, a.date, a.time, a.status,
               a.created_at, a.updated_at, p.name
        FROM appointments a
        JOIN patients p ON p.id = a.patient_id
        ORDER BY a.date DESC, a.time DESC`
	return r.queryJoined(ctx, query)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	const query = `
        SELECT a.id, a.patient_id, a.doctor_id, a.date, a.time, a.status,
               a.created_at, a.updated_at, p.name
        FROM appointments a
        JOIN patients p ON p.id = a.patient_id
        WHERE a.patient_id=$1
        ORDER BY a.date DESC, a.time DESC`
	return r.queryJoined(ctx, query, patientID)
}

func (r *appointmentRepository) ListToday(ctx context.Context) ([]domain.Appointment, error) {
	const query = `
        SELECT a.id, a.patient_id, a.doctor_id, a.date, a.time, a.status,
               a.created_at, a.updated_at, p.name
        FROM appointments a
        JOIN patients p ON p.id = a.patient_id
        WHERE a.date = CURRENT_DATE
        ORDER BY a.time ASC`
	return r.queryJoined(ctx, query)
}

func (r *appointmentRepository) queryJoined(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.PatientID,
			&appt.DoctorID,
			&appt.Date,
			&appt.Time,
			&appt.StoredStatus,
			&appt.CreatedAt,
			&appt.UpdatedAt,
			&appt.PatientName,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}
	return appointments, rows.Err()
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&count)
	return count, err
}
