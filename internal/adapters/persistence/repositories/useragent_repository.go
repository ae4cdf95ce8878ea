package repositories

import (
	"context"

	"gensuite-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userAgentTemplateRepository implements UserAgentTemplateRepository interface
type userAgentTemplateRepository struct {
	db *gorm.DB
}

// NewUserAgentTemplateRepository creates a new user-agent template repository
func NewUserAgentTemplateRepository(db *gorm.DB) UserAgentTemplateRepository {
	return &userAgentTemplateRepository{db: db}
}

// ListActive lists active user-agent templates
func (r *userAgentTemplateRepository) ListActive(ctx context.Context) ([]*models.UserAgentTemplate, error) {
	var templates []*models.UserAgentTemplate
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&templates).Error
	return templates, err
}

// Create creates a new user-agent template
func (r *userAgentTemplateRepository) Create(ctx context.Context, tmpl *models.UserAgentTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

// Count counts all user-agent templates
func (r *userAgentTemplateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserAgentTemplate{}).Count(&count).Error
	return count, err
}
