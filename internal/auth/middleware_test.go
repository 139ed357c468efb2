package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-service/internal/domain"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

func newTestApp(tm *TokenManager, actions ...Action) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		},
	})
	mw := NewAuthMiddleware(tm, zap.NewNop())

	handlers := []fiber.Handler{mw.Handle}
	for _, action := range actions {
		handlers = append(handlers, RequirePermission(action))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.JSON(identity)
	})
	app.Get("/protected", handlers...)
	return app
}

func TestAuthMiddlewareRejectsMissingAndMalformedHeaders(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)
	app := newTestApp(tm)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic abc123"},
		{name: "bearer without token", header: "Bearer"},
		{name: "garbage token", header: "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)
	app := newTestApp(tm)

	token, _, err := tm.Generate(testIdentity())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestRequirePermissionEnforcesPolicy(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	tests := []struct {
		name       string
		role       domain.Role
		action     Action
		wantStatus int
	}{
		{name: "admin allowed to delete patients", role: domain.RoleAdmin, action: ActionDeletePatient, wantStatus: http.StatusOK},
		{name: "doctor denied patient deletion", role: domain.RoleDoctor, action: ActionDeletePatient, wantStatus: http.StatusForbidden},
		{name: "doctor allowed status updates", role: domain.RoleDoctor, action: ActionUpdateAppointmentStatus, wantStatus: http.StatusOK},
		{name: "receptionist denied user listing", role: domain.RoleReceptionist, action: ActionListUsers, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tm, tt.action)
			identity := domain.Identity{ID: 1, Name: "Test", Email: "test@example.com", Role: tt.role}
			token, _, err := tm.Generate(identity)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
