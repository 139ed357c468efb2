package dto

// CreateAppointmentRequest payload for new appointments.
type CreateAppointmentRequest struct {
	PatientID int64  `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

// UpdateAppointmentStatusRequest payload for explicit status writes.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentSummary is an appointment with its resolved status.
type AppointmentSummary struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	DoctorID    *int64 `json:"doctor_id,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	PatientName string `json:"patient_name,omitempty"`
}
