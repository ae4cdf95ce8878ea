package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gensuite-api/internal/adapters/http/middleware"
	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/core/services"
	"gensuite-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const gateSecret = "gate-test-secret"

// stubAccountRepo serves a fixed account set; only lookup paths matter here
type stubAccountRepo struct {
	byUsername map[string]*models.Account
}

func (s *stubAccountRepo) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	if a, ok := s.byUsername[username]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAccountRepo) Create(_ context.Context, _ *models.Account) error { return nil }
func (s *stubAccountRepo) GetByID(_ context.Context, _ uint) (*models.Account, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubAccountRepo) GetByEmail(_ context.Context, _ string) (*models.Account, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubAccountRepo) Update(_ context.Context, _ *models.Account) error { return nil }
func (s *stubAccountRepo) UpdateApproval(_ context.Context, _ uint, _ bool) (*models.Account, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubAccountRepo) UpdateStatus(_ context.Context, _ uint, _ string) (*models.Account, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubAccountRepo) Delete(_ context.Context, _ uint) error { return nil }
func (s *stubAccountRepo) List(_ context.Context, _, _ int) ([]*models.Account, int64, error) {
	return nil, 0, nil
}
func (s *stubAccountRepo) ExistsByUsername(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (s *stubAccountRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// nopEventRepo discards security events
type nopEventRepo struct{}

func (nopEventRepo) Create(_ context.Context, _ *models.SecurityEvent) error { return nil }
func (nopEventRepo) ListRecent(_ context.Context, _ int) ([]*models.SecurityEvent, error) {
	return nil, nil
}
func (nopEventRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

func gateConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: gateSecret, TokenTTLMins: 15},
	}
}

func newGateApp(accounts map[string]*models.Account) *fiber.App {
	cfg := gateConfig()
	sessions := services.NewSessionService(&stubAccountRepo{byUsername: accounts}, cfg)
	security := services.NewSecurityService(nopEventRepo{}, "")

	app := fiber.New()

	app.Get("/admin/ping",
		middleware.AdminGate(sessions, security),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"pong": c.Locals(middleware.LocalSubject)})
		})

	app.Get("/tools/ping",
		middleware.UserGate(sessions, security),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"pong": c.Locals(middleware.LocalSubject)})
		})

	return app
}

func issueGateToken(t *testing.T, subject, role string, ttl time.Duration) string {
	t.Helper()
	signed, err := token.Issue(subject, role, domain.StatusActive, gateSecret, ttl)
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &parsed))
	}
	return resp, parsed
}

func TestGateRejectsMissingCredential(t *testing.T) {
	app := newGateApp(nil)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "No token provided", body["error"])
}

func TestGateRejectsWrongScheme(t *testing.T) {
	app := newGateApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Basic xyz")

	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "No token provided", body["error"])
}

func TestGateRejectsExpiredToken(t *testing.T) {
	app := newGateApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issueGateToken(t, "admin", token.RoleAdmin, -time.Minute))

	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Access token expired", body["error"])
}

func TestGateAdmitsAdminToken(t *testing.T) {
	app := newGateApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issueGateToken(t, "admin", token.RoleAdmin, 15*time.Minute))

	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "admin", body["pong"])
}

func TestGateEnforcesRoleScope(t *testing.T) {
	app := newGateApp(map[string]*models.Account{
		"alice": {ID: 1, Username: "alice", Approved: true, Status: domain.StatusActive},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issueGateToken(t, "alice", token.RoleUser, 15*time.Minute))

	resp, _ := doRequest(t, app, req)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGateRecheckDeniesSuspendedAccount(t *testing.T) {
	app := newGateApp(map[string]*models.Account{
		"alice": {ID: 1, Username: "alice", Approved: true, Status: domain.StatusSuspended},
	})

	req := httptest.NewRequest(http.MethodGet, "/tools/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issueGateToken(t, "alice", token.RoleUser, 15*time.Minute))

	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, false, body["is_valid"])
	require.Equal(t, string(domain.DenyAccountSuspended), body["status"])
	require.NotEmpty(t, body["message"])
}

func TestGateRecheckAdmitsActiveAccount(t *testing.T) {
	app := newGateApp(map[string]*models.Account{
		"alice": {ID: 1, Username: "alice", Approved: true, Status: domain.StatusActive},
	})

	req := httptest.NewRequest(http.MethodGet, "/tools/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issueGateToken(t, "alice", token.RoleUser, 15*time.Minute))

	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alice", body["pong"])
}

func TestGateAcceptsCookieTransport(t *testing.T) {
	app := newGateApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{
		Name:  middleware.AccessTokenCookie,
		Value: issueGateToken(t, "admin", token.RoleAdmin, 15*time.Minute),
	})

	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "admin", body["pong"])
}

func TestGateIdempotentAcrossCalls(t *testing.T) {
	app := newGateApp(nil)
	signed := issueGateToken(t, "admin", token.RoleAdmin, 15*time.Minute)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		resp, _ := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
