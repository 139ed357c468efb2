package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status represents appointment lifecycle states.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a submitted status against the closed set.
// This is the single definition of valid statuses shared by the read
// and write paths.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// Appointment is the domain model for a clinic visit.
type Appointment struct {
	ID           int64
	PatientID    int64
	DoctorID     *int64
	Date         *time.Time
	Time         string
	StoredStatus *string
	PatientName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResolveStatus computes the user-visible lifecycle state of an
// appointment. An explicitly recorded status from the known set always
// wins; anything else is derived from the appointment's date and time
// against now. Derivation is read-time only and never persisted.
func ResolveStatus(a Appointment, now time.Time) Status {
	if a.StoredStatus != nil {
		if status, err := ParseStatus(*a.StoredStatus); err == nil {
			return status
		}
	}
	if a.Date == nil {
		return StatusScheduled
	}

	apptDate := a.Date.Format("2006-01-02")
	today := now.Format("2006-01-02")
	if apptDate > today {
		return StatusScheduled
	}
	if apptDate < today {
		return StatusCompleted
	}

	// Same day: compare zero-padded HH:mm strings lexicographically.
	apptTime := a.Time
	if len(apptTime) > 5 {
		apptTime = apptTime[:5]
	}
	if apptTime == "" {
		apptTime = "00:00"
	}
	if apptTime > now.Format("15:04") {
		return StatusScheduled
	}
	return StatusCompleted
}
