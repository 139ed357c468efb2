package auth

import (
	"testing"

	"github.com/spec-kit/clinic-service/internal/domain"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name   string
		role   domain.Role
		action Action
		want   bool
	}{
		{name: "admin lists users", role: domain.RoleAdmin, action: ActionListUsers, want: true},
		{name: "doctor cannot list users", role: domain.RoleDoctor, action: ActionListUsers, want: false},
		{name: "receptionist cannot create users", role: domain.RoleReceptionist, action: ActionCreateUser, want: false},
		{name: "admin creates users", role: domain.RoleAdmin, action: ActionCreateUser, want: true},

		{name: "admin deletes patients", role: domain.RoleAdmin, action: ActionDeletePatient, want: true},
		{name: "doctor cannot delete patients", role: domain.RoleDoctor, action: ActionDeletePatient, want: false},
		{name: "receptionist cannot delete patients", role: domain.RoleReceptionist, action: ActionDeletePatient, want: false},

		{name: "receptionist creates appointments", role: domain.RoleReceptionist, action: ActionCreateAppointment, want: true},
		{name: "admin creates appointments", role: domain.RoleAdmin, action: ActionCreateAppointment, want: true},
		{name: "doctor cannot create appointments", role: domain.RoleDoctor, action: ActionCreateAppointment, want: false},

		{name: "doctor updates appointment status", role: domain.RoleDoctor, action: ActionUpdateAppointmentStatus, want: true},
		{name: "receptionist updates appointment status", role: domain.RoleReceptionist, action: ActionUpdateAppointmentStatus, want: true},
		{name: "admin updates appointment status", role: domain.RoleAdmin, action: ActionUpdateAppointmentStatus, want: true},

		{name: "receptionist creates patients", role: domain.RoleReceptionist, action: ActionCreatePatient, want: true},
		{name: "doctor cannot create patients", role: domain.RoleDoctor, action: ActionCreatePatient, want: false},

		{name: "doctor lists patients", role: domain.RoleDoctor, action: ActionListPatients, want: true},
		{name: "receptionist lists appointments", role: domain.RoleReceptionist, action: ActionListAppointments, want: true},
		{name: "doctor views dashboard", role: domain.RoleDoctor, action: ActionViewDashboard, want: true},

		{name: "unknown action denied for admin", role: domain.RoleAdmin, action: Action("drop-tables"), want: false},
		{name: "unknown role denied", role: domain.Role("janitor"), action: ActionListPatients, want: false},
		{name: "empty role denied", role: domain.Role(""), action: ActionListAppointments, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.role, tt.action)
			if got != tt.want {
				t.Errorf("Authorize(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
			}
			// Pure function: repeated calls agree.
			if again := Authorize(tt.role, tt.action); again != got {
				t.Errorf("Authorize(%q, %q) unstable: %v then %v", tt.role, tt.action, got, again)
			}
		})
	}
}

func TestPolicyNeverAllowsOutsideConfiguredSet(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleDoctor, domain.RoleReceptionist, domain.Role("intruder")}

	for action, allowed := range policy {
		allowedSet := make(map[domain.Role]bool, len(allowed))
		for _, role := range allowed {
			allowedSet[role] = true
		}
		for _, role := range roles {
			if Authorize(role, action) && !allowedSet[role] {
				t.Errorf("Authorize(%q, %q) allowed a role outside the configured set", role, action)
			}
		}
	}
}
