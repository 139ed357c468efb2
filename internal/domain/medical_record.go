package domain

import "time"

// MedicalRecord models a doctor's note attached to a patient.
type MedicalRecord struct {
	ID         int64
	PatientID  int64
	DoctorID   *int64
	Notes      string
	DoctorName *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
