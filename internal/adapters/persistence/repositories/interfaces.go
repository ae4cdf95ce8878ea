package repositories

import (
	"context"
	"time"

	"gensuite-api/internal/adapters/persistence/models"
)

// AccountRepository defines the credential store access interface
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	UpdateApproval(ctx context.Context, id uint, approved bool) (*models.Account, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Account, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PlanRepository defines the pricing plan repository interface
type PlanRepository interface {
	ListActive(ctx context.Context) ([]*models.Plan, error)
	GetByCode(ctx context.Context, code string) (*models.Plan, error)
	Create(ctx context.Context, plan *models.Plan) error
	Count(ctx context.Context) (int64, error)
}

// IPRecordRepository defines the login IP history repository interface
type IPRecordRepository interface {
	Create(ctx context.Context, record *models.IPRecord) error
	ListByAccount(ctx context.Context, accountID uint, limit int) ([]*models.IPRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SecurityEventRepository defines the security event repository interface
type SecurityEventRepository interface {
	Create(ctx context.Context, event *models.SecurityEvent) error
	ListRecent(ctx context.Context, limit int) ([]*models.SecurityEvent, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserAgentTemplateRepository defines the user-agent template repository interface
type UserAgentTemplateRepository interface {
	ListActive(ctx context.Context) ([]*models.UserAgentTemplate, error)
	Create(ctx context.Context, tmpl *models.UserAgentTemplate) error
	Count(ctx context.Context) (int64, error)
}
