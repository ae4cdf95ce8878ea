package services

import (
	"context"
	"errors"
	"log"

	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/adapters/persistence/repositories"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/pkg/password"
	"gensuite-api/internal/pkg/token"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// AuthService handles end-user authentication business logic
type AuthService struct {
	accountRepo repositories.AccountRepository
	ipRepo      repositories.IPRecordRepository
	security    *SecurityService
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo repositories.AccountRepository,
	ipRepo repositories.IPRecordRepository,
	security *SecurityService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		ipRepo:      ipRepo,
		security:    security,
		cfg:         cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates registration input
func (i RegisterInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(3, 50), is.Alphanumeric),
		validation.Field(&i.Email, validation.Required, is.Email),
		validation.Field(&i.Password, validation.Required, validation.Length(password.MinLength, 128)),
	)
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates login input
func (i LoginInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required),
		validation.Field(&i.Password, validation.Required),
	)
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Account     *models.AccountResponse `json:"account"`
	AccessToken string                  `json:"access_token"`
}

// Register registers a new end-user account. New accounts start unapproved
// (pending) and receive no token until an operator approves them.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.AccountResponse, error) {
	// 1. Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// 2. Check if username already exists
	exists, err := s.accountRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	// 3. Check if email already exists
	exists, err = s.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	// 4. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create account (pending approval)
	account := &models.Account{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     token.RoleUser,
		Approved: false,
		Status:   domain.StatusActive,
		PlanCode: "free",
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("✅ Account registered: %s (pending approval)", account.Username)
	return account.ToResponse(), nil
}

// Login authenticates an end user and issues a session token.
func (s *AuthService) Login(ctx context.Context, input *LoginInput, sourceIP, userAgent string) (*AuthResponse, error) {
	// 1. Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// 2. Find account by username
	account, err := s.accountRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Verify password
	if !password.Verify(input.Password, account.Password) {
		s.security.LogSecurityEvent("auth.login_failed", "wrong password for "+account.Username, sourceIP)
		return nil, ErrInvalidCredentials
	}

	// 4. Evaluate account lifecycle state. Pending, suspended, deactivated
	// and expired accounts never receive a token.
	if reason, ok := domain.EvaluateAccount(account.Snapshot(), timeNow()); !ok {
		return nil, domain.NewStatusError(reason)
	}

	// 5. Issue session token with a status snapshot
	accessToken, err := token.Issue(
		account.Username,
		account.Role,
		account.Status,
		s.cfg.JWT.Secret,
		tokenTTL(s.cfg),
	)
	if err != nil {
		return nil, err
	}

	// 6. Record login IP history
	s.recordLoginIP(ctx, account.ID, sourceIP, userAgent)

	log.Printf("✅ Account logged in: %s", account.Username)

	return &AuthResponse{
		Account:     account.ToResponse(),
		AccessToken: accessToken,
	}, nil
}

// GetAccountByUsername gets an account by username
func (s *AuthService) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// recordLoginIP appends to the account's IP history; failures are logged,
// never surfaced to the login flow.
func (s *AuthService) recordLoginIP(ctx context.Context, accountID uint, sourceIP, userAgent string) {
	if s.ipRepo == nil || sourceIP == "" {
		return
	}
	record := &models.IPRecord{
		AccountID: accountID,
		IPAddress: sourceIP,
		UserAgent: userAgent,
	}
	if err := s.ipRepo.Create(ctx, record); err != nil {
		log.Printf("⚠️ Failed to record login IP: %v", err)
	}
}
