package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/handlers"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/notify"
	"github.com/hallmoor/binduty/internal/rota"
	"github.com/hallmoor/binduty/internal/routes"
	"github.com/hallmoor/binduty/internal/services"
	"github.com/hallmoor/binduty/internal/store"
	"github.com/hallmoor/binduty/internal/store/storetest"
)

type testEnv struct {
	app   *fiber.App
	store *storetest.Memory
	auth  *services.AuthService

	superuser models.Admin
	editor    models.Admin
	viewer    models.Admin
}

func seedAdmin(t *testing.T, st *storetest.Memory, id, email, role string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.Admin{ID: id, Email: email, PasswordHash: string(hash), Role: role}
	admins := store.NewCollection[models.Admin](st, store.KeyAdmins)
	require.NoError(t, admins.Mutate(context.Background(), func(all []models.Admin) ([]models.Admin, error) {
		return append(all, admin), nil
	}))
	return admin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := storetest.New()
	cfg := &config.Config{
		JWTSecret:                "test-secret",
		JWTExpiry:                time.Hour,
		ReminderCampaignName:     "bin_reminder",
		AnnouncementCampaignName: "issue_alert",
	}

	trail := audit.NewTrail(st)
	engine := rota.NewEngine(st)
	dispatcher := notify.NewDispatcher(notify.NewMockSender())
	authService := services.NewAuthService(st, cfg)
	residentService := services.NewResidentService(st, trail)
	adminService := services.NewAdminService(st, trail)
	settingsService := services.NewSettingsService(st, trail)
	issueService := services.NewIssueService(st, trail, dispatcher, settingsService, cfg)
	reminderService := services.NewReminderService(engine, trail, dispatcher, settingsService, residentService, cfg)

	app := fiber.New()
	routes.Setup(app, cfg, authService, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Dashboard: handlers.NewDashboardHandler(engine, settingsService),
		Residents: handlers.NewResidentHandler(residentService),
		Rotation:  handlers.NewRotationHandler(engine, trail),
		Issues:    handlers.NewIssueHandler(issueService),
		History:   handlers.NewHistoryHandler(trail),
		Logs:      handlers.NewLogHandler(trail),
		Admins:    handlers.NewAdminHandler(adminService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Reminders: handlers.NewReminderHandler(reminderService, authService),
		Health:    handlers.NewHealthHandler(st),
	})

	return &testEnv{
		app:       app,
		store:     st,
		auth:      authService,
		superuser: seedAdmin(t, st, "su-1", "root@example.com", models.RoleSuperuser),
		editor:    seedAdmin(t, st, "ed-1", "editor@example.com", models.RoleEditor),
		viewer:    seedAdmin(t, st, "vw-1", "viewer@example.com", models.RoleViewer),
	}
}

func (e *testEnv) token(t *testing.T, admin models.Admin) string {
	t.Helper()
	token, err := e.auth.GenerateToken(admin)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-access-token", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "editor@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, body.Token)
	require.Equal(t, "editor@example.com", body.User.Email)
	require.Equal(t, models.RoleEditor, body.User.Role)

	id, err := env.auth.ParseToken(body.Token)
	require.NoError(t, err)
	require.Equal(t, env.editor.ID, id)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "editor@example.com", Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	require.True(t, body.Error)
	require.Equal(t, "Invalid credentials", body.Message)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/dashboard", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeletedAdminTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	ghost := models.Admin{ID: "ghost", Email: "ghost@example.com", Role: models.RoleSuperuser}

	resp := env.request(t, http.MethodGet, "/api/dashboard", env.token(t, ghost), nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGates(t *testing.T) {
	env := newTestEnv(t)

	// Any role can read.
	resp := env.request(t, http.MethodGet, "/api/residents", env.token(t, env.viewer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Viewers cannot write.
	resp = env.request(t, http.MethodPost, "/api/residents", env.token(t, env.viewer), dto.CreateResidentRequest{
		Name: "Alice Smith", FlatNumber: "4",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Editors can write residents.
	resp = env.request(t, http.MethodPost, "/api/residents", env.token(t, env.editor), dto.CreateResidentRequest{
		Name: "Alice Smith", FlatNumber: "4",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Resident](t, resp)
	require.NotEmpty(t, created.ID)

	// Deleting residents is superuser-only.
	resp = env.request(t, http.MethodDelete, "/api/residents/"+created.ID, env.token(t, env.editor), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/residents/"+created.ID, env.token(t, env.superuser), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAdminManagement_SuperuserOnly(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/admins", env.token(t, env.editor), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/admins", env.token(t, env.superuser), dto.CreateAdminRequest{
		Email: "new@example.com", Password: "secret123", Role: models.RoleViewer,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate email is a conflict.
	resp = env.request(t, http.MethodPost, "/api/admins", env.token(t, env.superuser), dto.CreateAdminRequest{
		Email: "new@example.com", Password: "other456", Role: models.RoleViewer,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPublicIssueReport_NoTokenNeeded(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/issues", "", dto.ReportIssueRequest{
		Name: "Jane", FlatNumber: "12B", Description: "Leaking tap",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/issues/public", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	issues := decode[[]models.Issue](t, resp)
	require.Len(t, issues, 1)
	require.Equal(t, models.IssueStatusReported, issues[0].Status)
}

func TestTriggerReminder_InvalidTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/trigger-reminder", "bogus", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTriggerReminder_ScheduledWithEmptyRoster(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/trigger-reminder", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboard_ReportsDutyAndStatus(t *testing.T) {
	env := newTestEnv(t)
	roster := store.NewCollection[models.Resident](env.store, store.KeyFlats)
	require.NoError(t, roster.Replace(context.Background(), []models.Resident{
		{ID: "r1", Name: "Alice Smith", FlatNumber: "4"},
		{ID: "r2", Name: "Bob Jones", FlatNumber: "5"},
	}))

	resp := env.request(t, http.MethodGet, "/api/dashboard", env.token(t, env.viewer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.DashboardResponse](t, resp)
	require.Equal(t, "Alice Smith", body.CurrentDuty.Name)
	require.Equal(t, "Bob Jones", body.NextInRotation.Name)
	require.Equal(t, "N/A", body.SystemStatus.LastReminderRun)
	require.False(t, body.SystemStatus.RemindersPaused)
}

func TestHealth_Public(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.HealthResponse](t, resp)
	require.Equal(t, "ok", body.Status)
}
