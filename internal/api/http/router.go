package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/http/handlers"
	"github.com/spec-kit/clinic-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Patients       *handlers.PatientsHandler
	Appointments   *handlers.AppointmentsHandler
	MedicalRecords *handlers.MedicalRecordsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every protected route passes the
// token check first and a role policy check second.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	users := protected.Group("/users")
	users.Get("", auth.RequirePermission(auth.ActionListUsers), cfg.Users.List)
	users.Post("", auth.RequirePermission(auth.ActionCreateUser), cfg.Users.Create)

	patients := protected.Group("/patients")
	patients.Get("", auth.RequirePermission(auth.ActionListPatients), cfg.Patients.List)
	patients.Post("", auth.RequirePermission(auth.ActionCreatePatient), cfg.Patients.Create)
	patients.Get("/:id", auth.RequirePermission(auth.ActionViewPatient), cfg.Patients.Get)
	patients.Put("/:id", auth.RequirePermission(auth.ActionUpdatePatient), cfg.Patients.Update)
	patients.Delete("/:id", auth.RequirePermission(auth.ActionDeletePatient), cfg.Patients.Delete)

	appointments := protected.Group("/appointments")
	appointments.Get("", auth.RequirePermission(auth.ActionListAppointments), cfg.Appointments.List)
	appointments.Post("", auth.RequirePermission(auth.ActionCreateAppointment), cfg.Appointments.Create)
	appointments.Patch("/:id", auth.RequirePermission(auth.ActionUpdateAppointmentStatus), cfg.Appointments.UpdateStatus)

	records := protected.Group("/medical-records")
	records.Get("/patient/:patientId", auth.RequirePermission(auth.ActionListMedicalRecords), cfg.MedicalRecords.ListByPatient)
	records.Post("", auth.RequirePermission(auth.ActionCreateMedicalRecord), cfg.MedicalRecords.Create)
	records.Put("/:id", auth.RequirePermission(auth.ActionUpdateMedicalRecord), cfg.MedicalRecords.Update)
	records.Delete("/:id", auth.RequirePermission(auth.ActionDeleteMedicalRecord), cfg.MedicalRecords.Delete)

	protected.Get("/dashboard", auth.RequirePermission(auth.ActionViewDashboard), cfg.Dashboard.Summary)
}
