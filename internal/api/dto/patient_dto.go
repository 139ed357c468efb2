package dto

// PatientRequest payload for creating or updating a patient.
type PatientRequest struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	DoctorID *int64  `json:"doctor_id"`
}

// PatientSummary is the public view of a patient.
type PatientSummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	DoctorID *int64  `json:"doctor_id,omitempty"`
}

// PatientDetail is a patient with their appointment history.
type PatientDetail struct {
	PatientSummary
	Appointments []AppointmentSummary `json:"appointments"`
}
