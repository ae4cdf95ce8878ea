package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/adapters/persistence/repositories"
	"gensuite-api/internal/config"
	"gensuite-api/internal/core/domain"
	"gensuite-api/internal/pkg/token"

	"gorm.io/gorm"
)

const bearerPrefix = "Bearer "

// timeNow is a seam for tests
var timeNow = time.Now

// tokenTTL derives the session token lifetime from configuration
func tokenTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.JWT.TokenTTLMins) * time.Minute
}

// Resolution is the single outcome type of credential resolution: either
// authorized with claims (and the account when re-checked) or denied with
// exactly one reason. There are no partial states.
type Resolution struct {
	Authorized bool
	Claims     *token.Claims
	Account    *models.Account
	Reason     domain.DenialReason
}

// Denied builds a denied resolution
func Denied(reason domain.DenialReason) *Resolution {
	return &Resolution{Reason: reason}
}

// SessionService resolves raw request credentials into authorized identities.
// Stateless: every call re-verifies from scratch, no caching across calls.
type SessionService struct {
	accountRepo repositories.AccountRepository
	cfg         *config.Config
}

// NewSessionService creates a new session service
func NewSessionService(accountRepo repositories.AccountRepository, cfg *config.Config) *SessionService {
	return &SessionService{
		accountRepo: accountRepo,
		cfg:         cfg,
	}
}

// ResolveBearer resolves an Authorization header value. A missing value or a
// non-Bearer scheme resolves to NoToken.
func (s *SessionService) ResolveBearer(ctx context.Context, authHeader string, recheck bool) *Resolution {
	if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
		return Denied(domain.DenyNoToken)
	}
	return s.ResolveToken(ctx, strings.TrimPrefix(authHeader, bearerPrefix), recheck)
}

// ResolveToken resolves a bare token string (cookie transport).
// With recheck, the live account record is loaded and its lifecycle state
// evaluated; without it, the signed claims alone decide.
func (s *SessionService) ResolveToken(ctx context.Context, tokenString string, recheck bool) *Resolution {
	if tokenString == "" {
		return Denied(domain.DenyNoToken)
	}

	claims, err := token.Verify(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return Denied(domain.DenyExpiredToken)
		}
		return Denied(domain.DenyInvalidToken)
	}

	if !recheck {
		return &Resolution{Authorized: true, Claims: claims}
	}

	account, err := s.accountRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		// No retry policy for the store round-trip: a missing record and a
		// store failure both terminate resolution immediately.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Account lookup failed for %s: %v", claims.Subject, err)
		}
		return Denied(domain.DenyAccountNotFound)
	}

	if reason, ok := domain.EvaluateAccount(account.Snapshot(), timeNow()); !ok {
		return Denied(reason)
	}

	return &Resolution{Authorized: true, Claims: claims, Account: account}
}
