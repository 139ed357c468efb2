package domain

import "time"

// Patient is the domain model for clinic patients.
type Patient struct {
	ID        int64
	Name      string
	Email     *string
	Phone     *string
	DoctorID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
