package dto

import "time"

// CreateMedicalRecordRequest payload for new medical notes.
type CreateMedicalRecordRequest struct {
	PatientID int64  `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id"`
	Notes     string `json:"notes"`
}

// UpdateMedicalRecordRequest payload for editing a note.
type UpdateMedicalRecordRequest struct {
	Notes string `json:"notes"`
}

// MedicalRecordSummary is the public view of a medical note.
type MedicalRecordSummary struct {
	ID         int64     `json:"id"`
	PatientID  int64     `json:"patient_id"`
	DoctorID   *int64    `json:"doctor_id,omitempty"`
	DoctorName *string   `json:"doctor_name,omitempty"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
