package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gensuite-api/internal/adapters/http/handlers"
	"gensuite-api/internal/adapters/http/middleware"
	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/services"
	"gensuite-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const handlerSecret = "handler-test-secret"

// memAccountRepo is an in-memory credential store for handler tests
type memAccountRepo struct {
	accounts map[string]*models.Account
}

func newMemAccountRepo(accounts ...*models.Account) *memAccountRepo {
	m := &memAccountRepo{accounts: map[string]*models.Account{}}
	for _, a := range accounts {
		m.accounts[a.Username] = a
	}
	return m
}

func (m *memAccountRepo) Create(_ context.Context, account *models.Account) error {
	m.accounts[account.Username] = account
	return nil
}

func (m *memAccountRepo) GetByID(_ context.Context, id uint) (*models.Account, error) {
	for _, a := range m.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAccountRepo) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	if a, ok := m.accounts[username]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAccountRepo) Update(_ context.Context, account *models.Account) error {
	m.accounts[account.Username] = account
	return nil
}

func (m *memAccountRepo) UpdateApproval(ctx context.Context, id uint, approved bool) (*models.Account, error) {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Approved = approved
	return a, nil
}

func (m *memAccountRepo) UpdateStatus(ctx context.Context, id uint, status string) (*models.Account, error) {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

func (m *memAccountRepo) Delete(_ context.Context, _ uint) error { return nil }

func (m *memAccountRepo) List(_ context.Context, offset, limit int) ([]*models.Account, int64, error) {
	all := make([]*models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		all = append(all, a)
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(m.accounts)), nil
}

func (m *memAccountRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := m.accounts[username]
	return ok, nil
}

func (m *memAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// discardEventRepo drops security events
type discardEventRepo struct{}

func (discardEventRepo) Create(_ context.Context, _ *models.SecurityEvent) error { return nil }
func (discardEventRepo) ListRecent(_ context.Context, _ int) ([]*models.SecurityEvent, error) {
	return nil, nil
}
func (discardEventRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func handlerConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: handlerSecret, TokenTTLMins: 15},
		Admin:   config.AdminConfig{Username: "admin", Password: "admin123"},
	}
}

// newBackOfficeApp wires the back-office surface the way routes.Setup does
func newBackOfficeApp(accounts *memAccountRepo) *fiber.App {
	cfg := handlerConfig()
	security := services.NewSecurityService(discardEventRepo{}, "")
	sessions := services.NewSessionService(accounts, cfg)
	admin := services.NewAdminService(accounts, security, nil, cfg)
	handler := handlers.NewAdminHandler(admin, nil, discardEventRepo{})

	app := fiber.New()
	group := app.Group("/api/v1/admin")
	group.Post("/login", handler.Login)

	gate := middleware.AdminGate(sessions, security)
	group.Get("/verify", gate, handler.Verify)
	group.Get("/alerts", gate, handler.ListAlerts)
	group.Get("/users", gate, handler.ListUsers)
	group.Put("/users/:id/status", gate, handler.UpdateStatus)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return execute(t, app, req)
}

func execute(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func adminLogin(t *testing.T, app *fiber.App, username, pass string) (int, string) {
	t.Helper()
	resp, body := postJSON(t, app, "/api/v1/admin/login", map[string]string{
		"username": username,
		"password": pass,
	}, nil)

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, ""
	}

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	accessToken, ok := data["access_token"].(string)
	require.True(t, ok)
	return resp.StatusCode, accessToken
}

func TestBackOfficeLoginIssuesAdminToken(t *testing.T) {
	app := newBackOfficeApp(newMemAccountRepo())

	status, accessToken := adminLogin(t, app, "admin", "admin123")
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, accessToken)

	claims, err := token.Verify(accessToken, handlerSecret)
	require.NoError(t, err)
	require.Equal(t, token.RoleAdmin, claims.Role)
	require.Equal(t, "admin", claims.Subject)
}

func TestBackOfficeLoginRejectsBadCredentials(t *testing.T) {
	app := newBackOfficeApp(newMemAccountRepo())

	t.Run("wrong password", func(t *testing.T) {
		status, _ := adminLogin(t, app, "admin", "nope")
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("unknown operator", func(t *testing.T) {
		status, _ := adminLogin(t, app, "root", "admin123")
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestBackOfficeTokenOpensProtectedEndpoints(t *testing.T) {
	app := newBackOfficeApp(newMemAccountRepo(
		&models.Account{ID: 1, Username: "alice", Email: "alice@example.com", Approved: true, Status: "active"},
	))

	_, accessToken := adminLogin(t, app, "admin", "admin123")
	bearer := map[string]string{fiber.HeaderAuthorization: "Bearer " + accessToken}

	t.Run("verify", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/verify", nil)
		req.Header.Set(fiber.HeaderAuthorization, bearer[fiber.HeaderAuthorization])
		resp, body := execute(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]interface{})
		require.Equal(t, "admin", data["username"])
		require.Equal(t, token.RoleAdmin, data["role"])
	})

	t.Run("list users", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, bearer[fiber.HeaderAuthorization])
		resp, body := execute(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, body["success"].(bool))
	})

	t.Run("alerts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/alerts", nil)
		req.Header.Set(fiber.HeaderAuthorization, bearer[fiber.HeaderAuthorization])
		resp, body := execute(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]interface{})
		require.NotEmpty(t, data["alerts"])
	})
}

func TestBackOfficeRejectsUnauthenticated(t *testing.T) {
	app := newBackOfficeApp(newMemAccountRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	resp, body := execute(t, app, req)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "No token provided", body["error"])
}

func TestBackOfficeSuspendAccount(t *testing.T) {
	repo := newMemAccountRepo(
		&models.Account{ID: 7, Username: "bob", Email: "bob@example.com", Approved: true, Status: "active"},
	)
	app := newBackOfficeApp(repo)

	_, accessToken := adminLogin(t, app, "admin", "admin123")

	body, err := json.Marshal(map[string]string{"status": "suspended"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/users/7/status", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)

	resp, _ := execute(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "suspended", repo.accounts["bob"].Status)
}
