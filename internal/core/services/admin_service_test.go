package services_test

import (
	"context"
	"testing"
	"time"

	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/core/services"
	"gensuite-api/internal/pkg/token"

	"github.com/stretchr/testify/require"
)

// nopEventRepo discards security events in tests
type nopEventRepo struct{}

func (nopEventRepo) Create(_ context.Context, _ *models.SecurityEvent) error { return nil }

func (nopEventRepo) ListRecent(_ context.Context, _ int) ([]*models.SecurityEvent, error) {
	return nil, nil
}

func (nopEventRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

func adminTestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: testSecret, TokenTTLMins: 15},
		Admin:   config.AdminConfig{Username: "admin", Password: "admin123"},
	}
}

func newAdminService(repo *fakeAccountRepo) *services.AdminService {
	security := services.NewSecurityService(nopEventRepo{}, "")
	return services.NewAdminService(repo, security, nil, adminTestConfig())
}

func TestAdminLogin(t *testing.T) {
	admin := newAdminService(newFakeAccountRepo())
	ctx := context.Background()

	t.Run("default credentials issue admin token", func(t *testing.T) {
		signed, err := admin.Login(ctx, "admin", "admin123", "127.0.0.1")
		require.NoError(t, err)

		claims, err := token.Verify(signed, testSecret)
		require.NoError(t, err)
		require.Equal(t, token.RoleAdmin, claims.Role)
		require.Equal(t, "admin", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := admin.Login(ctx, "admin", "nope", "127.0.0.1")
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := admin.Login(ctx, "root", "admin123", "127.0.0.1")
		require.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestAdminAccountManagement(t *testing.T) {
	ctx := context.Background()
	pending := &models.Account{ID: 7, Username: "newbie", Email: "newbie@example.com", Approved: false, Status: domain.StatusActive}
	admin := newAdminService(newFakeAccountRepo(pending))

	t.Run("approve account", func(t *testing.T) {
		resp, err := admin.SetApproval(ctx, 7, true)
		require.NoError(t, err)
		require.True(t, resp.Approved)
	})

	t.Run("suspend account", func(t *testing.T) {
		resp, err := admin.SetStatus(ctx, 7, domain.StatusSuspended)
		require.NoError(t, err)
		require.Equal(t, domain.StatusSuspended, resp.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := admin.SetStatus(ctx, 7, "frozen")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := admin.SetApproval(ctx, 999, true)
		require.ErrorIs(t, err, services.ErrAccountNotFound)
	})
}

func TestAdminAlertsFixture(t *testing.T) {
	admin := newAdminService(newFakeAccountRepo())

	alerts, err := admin.ListAlerts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, alerts)
	for _, a := range alerts {
		require.NotEmpty(t, a.Severity)
		require.NotEmpty(t, a.Message)
	}
}
