package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/adapters/persistence/repositories"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/pkg/password"
	"gensuite-api/internal/pkg/token"

	"gorm.io/gorm"
)

// Alert is a back-office notification entry
type Alert struct {
	ID       uint      `json:"id"`
	Severity string    `json:"severity"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// AlertSource supplies the back-office alerts listing. The default is a
// fixture source; a store-backed implementation can be plugged in without
// touching the handlers.
type AlertSource interface {
	ListAlerts(ctx context.Context) ([]Alert, error)
}

// FixtureAlertSource returns a fixed sample alert set
type FixtureAlertSource struct{}

// ListAlerts returns the fixture alerts
func (FixtureAlertSource) ListAlerts(_ context.Context) ([]Alert, error) {
	base := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	return []Alert{
		{ID: 1, Severity: "warning", Title: "Repeated invalid tokens", Message: "14 invalid-token attempts from 203.0.113.7 in the last hour", At: base},
		{ID: 2, Severity: "info", Title: "New registrations", Message: "6 accounts awaiting approval", At: base.Add(2 * time.Hour)},
		{ID: 3, Severity: "critical", Title: "Webhook delivery failing", Message: "Security webhook returned 500 three times", At: base.Add(5 * time.Hour)},
	}, nil
}

// AdminService handles back-office authentication and account management.
// Both back-office surfaces share this one service so their auth logic
// cannot drift apart.
type AdminService struct {
	accountRepo repositories.AccountRepository
	security    *SecurityService
	alerts      AlertSource
	cfg         *config.Config
}

// NewAdminService creates a new admin service
func NewAdminService(
	accountRepo repositories.AccountRepository,
	security *SecurityService,
	alerts AlertSource,
	cfg *config.Config,
) *AdminService {
	if alerts == nil {
		alerts = FixtureAlertSource{}
	}
	return &AdminService{
		accountRepo: accountRepo,
		security:    security,
		alerts:      alerts,
		cfg:         cfg,
	}
}

// Login authenticates against the configured back-office credentials and
// issues an admin session token.
func (s *AdminService) Login(ctx context.Context, username, pass, sourceIP string) (string, error) {
	userOK := password.ConstantTimeEquals(username, s.cfg.Admin.Username)
	passOK := password.ConstantTimeEquals(pass, s.cfg.Admin.Password)
	if !userOK || !passOK {
		s.security.LogSecurityEvent("admin.login_failed", "back-office login rejected for "+username, sourceIP)
		return "", ErrInvalidCredentials
	}

	accessToken, err := token.Issue(username, token.RoleAdmin, "", s.cfg.JWT.Secret, tokenTTL(s.cfg))
	if err != nil {
		return "", err
	}

	log.Printf("✅ Back-office login: %s", username)
	return accessToken, nil
}

// ListAccounts lists accounts with pagination
func (s *AdminService) ListAccounts(ctx context.Context, offset, limit int) ([]*models.AccountResponse, int64, error) {
	accounts, total, err := s.accountRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, a.ToResponse())
	}
	return responses, total, nil
}

// SetApproval updates an account's approval flag
func (s *AdminService) SetApproval(ctx context.Context, id uint, approved bool) (*models.AccountResponse, error) {
	account, err := s.accountRepo.UpdateApproval(ctx, id, approved)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	log.Printf("✅ Account %d approval set to %v", id, approved)
	return account.ToResponse(), nil
}

// SetStatus updates an account's lifecycle status (suspend, reactivate,
// deactivate). Only statuses the credential store knows are accepted.
func (s *AdminService) SetStatus(ctx context.Context, id uint, status string) (*models.AccountResponse, error) {
	switch status {
	case domain.StatusActive, domain.StatusInactive, domain.StatusSuspended, domain.StatusPending:
	default:
		return nil, domain.ErrInvalidInput
	}

	account, err := s.accountRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	log.Printf("✅ Account %d status set to %s", id, status)
	return account.ToResponse(), nil
}

// ListAlerts lists back-office alerts from the configured source
func (s *AdminService) ListAlerts(ctx context.Context) ([]Alert, error) {
	return s.alerts.ListAlerts(ctx)
}
