package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// MedicalRecordRepository encapsulates medical note persistence.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) error
	UpdateNotes(ctx context.Context, record *domain.MedicalRecord) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error)
}

type medicalRecordRepository struct {
	pool *pgxpool.Pool
}

// NewMedicalRecordRepository instantiates repository.
func NewMedicalRecordRepository(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepository{pool: pool}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) error {
	const query = `
        INSERT INTO medical_records (patient_id, doctor_id, notes)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		record.PatientID,
		record.DoctorID,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *medicalRecordRepository) UpdateNotes(ctx context.Context, record *domain.MedicalRecord) error {
	const query = `
        UPDATE medical_records SET notes=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING patient_id, doctor_id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, record.Notes, record.ID).Scan(
		&record.PatientID,
		&record.DoctorID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	return err
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM medical_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicalRecordRepository) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	const query = `
        SELECT id, patient_id, doctor_id, notes, created_at, updated_at
        FROM medical_records WHERE id=$1`

	var record domain.MedicalRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.PatientID,
		&record.DoctorID,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error) {
	const query = `
        SELECT mr.id, mr.patient_id, mr.doctor_id, mr.notes, mr.created_at, mr.updated_at,
               u.name
        FROM medical_records mr
        LEFT JOIN users u ON u.id = mr.doctor_id
        WHERE mr.patient_id=$1
        ORDER BY mr.created_at DESC`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MedicalRecord
	for rows.Next() {
		var record domain.MedicalRecord
		if err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.DoctorID,
			&record.Notes,
			&record.CreatedAt,
			&record.UpdatedAt,
			&record.DoctorName,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
