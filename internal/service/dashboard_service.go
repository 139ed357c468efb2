package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-service/internal/persistence"
	"github.com/spec-kit/clinic-service/internal/repository"
)

const dashboardCacheKey = "dashboard:summary"

// DashboardStats aggregates table counts.
type DashboardStats struct {
	TotalPatients     int64 `json:"total_patients"`
	TotalAppointments int64 `json:"total_appointments"`
	TotalUsers        int64 `json:"total_users"`
}

// TodayAppointment is a dashboard row for an appointment happening today.
type TodayAppointment struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	DoctorID    *int64 `json:"doctor_id,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	PatientName string `json:"patient_name"`
}

// DashboardData is the dashboard payload.
type DashboardData struct {
	Stats             DashboardStats     `json:"stats"`
	TodayAppointments []TodayAppointment `json:"today_appointments"`
}

// DashboardService aggregates counters and today's schedule, with a
// short-lived Redis cache in front of the queries.
type DashboardService struct {
	patients     repository.PatientRepository
	users        repository.UserRepository
	appointments *AppointmentService
	counts       repository.AppointmentRepository
	cache        *persistence.Redis
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(
	patients repository.PatientRepository,
	users repository.UserRepository,
	appointments *AppointmentService,
	counts repository.AppointmentRepository,
	cache *persistence.Redis,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		patients:     patients,
		users:        users,
		appointments: appointments,
		counts:       counts,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Summary returns dashboard data, served from cache when fresh.
// Cache failures degrade to direct queries.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardData, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	patientCount, err := s.patients.Count(ctx)
	if err != nil {
		return nil, err
	}
	appointmentCount, err := s.counts.Count(ctx)
	if err != nil {
		return nil, err
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.appointments.ListToday(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]TodayAppointment, 0, len(today))
	for _, view := range today {
		row := TodayAppointment{
			ID:          view.Appointment.ID,
			PatientID:   view.Appointment.PatientID,
			DoctorID:    view.Appointment.DoctorID,
			Time:        view.Appointment.Time,
			Status:      string(view.Status),
			PatientName: view.Appointment.PatientName,
		}
		if view.Appointment.Date != nil {
			row.Date = view.Appointment.Date.Format("2006-01-02")
		}
		rows = append(rows, row)
	}

	data := &DashboardData{
		Stats: DashboardStats{
			TotalPatients:     patientCount,
			TotalAppointments: appointmentCount,
			TotalUsers:        userCount,
		},
		TodayAppointments: rows,
	}
	s.toCache(ctx, data)
	return data, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *DashboardData {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var data DashboardData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("discarding malformed dashboard cache entry", zap.Error(err))
		return nil
	}
	return &data
}

func (s *DashboardService) toCache(ctx context.Context, data *DashboardData) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("unable to cache dashboard summary", zap.Error(err))
	}
}
