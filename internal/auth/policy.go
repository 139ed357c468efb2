package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/domain"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// Action identifies a protected operation.
type Action string

const (
	ActionListUsers  Action = "list-users"
	ActionCreateUser Action = "create-user"

	ActionListPatients  Action = "list-patients"
	ActionViewPatient   Action = "view-patient"
	ActionCreatePatient Action = "create-patient"
	ActionUpdatePatient Action = "update-patient"
	ActionDeletePatient Action = "delete-patient"

	ActionListAppointments        Action = "list-appointments"
	ActionCreateAppointment       Action = "create-appointment"
	ActionUpdateAppointmentStatus Action = "update-appointment-status"

	ActionViewDashboard Action = "view-dashboard"

	ActionListMedicalRecords  Action = "list-medical-records"
	ActionCreateMedicalRecord Action = "create-medical-record"
	ActionUpdateMedicalRecord Action = "update-medical-record"
	ActionDeleteMedicalRecord Action = "delete-medical-record"
)

var anyRole = []domain.Role{domain.RoleAdmin, domain.RoleDoctor, domain.RoleReceptionist}

// policy is the static role table. An action absent from the table is
// denied for every role.
var policy = map[Action][]domain.Role{
	ActionListUsers:  {domain.RoleAdmin},
	ActionCreateUser: {domain.RoleAdmin},

	ActionListPatients:  anyRole,
	ActionViewPatient:   anyRole,
	ActionCreatePatient: {domain.RoleAdmin, domain.RoleReceptionist},
	ActionUpdatePatient: {domain.RoleAdmin, domain.RoleReceptionist},
	ActionDeletePatient: {domain.RoleAdmin},

	ActionListAppointments:        anyRole,
	ActionCreateAppointment:       {domain.RoleAdmin, domain.RoleReceptionist},
	ActionUpdateAppointmentStatus: {domain.RoleAdmin, domain.RoleReceptionist, domain.RoleDoctor},

	ActionViewDashboard: anyRole,

	ActionListMedicalRecords:  anyRole,
	ActionCreateMedicalRecord: {domain.RoleAdmin, domain.RoleDoctor},
	ActionUpdateMedicalRecord: {domain.RoleAdmin, domain.RoleDoctor},
	ActionDeleteMedicalRecord: {domain.RoleAdmin},
}

// Authorize decides whether the role may perform the action.
// Unknown roles and unknown actions are denied.
func Authorize(role domain.Role, action Action) bool {
	for _, allowed := range policy[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// RequirePermission enforces the role policy for a route. It expects
// AuthMiddleware to have resolved the caller's identity already.
func RequirePermission(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Authorize(identity.Role, action) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
