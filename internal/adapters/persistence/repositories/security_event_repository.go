package repositories

import (
	"context"
	"time"

	"gensuite-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// securityEventRepository implements SecurityEventRepository interface
type securityEventRepository struct {
	db *gorm.DB
}

// NewSecurityEventRepository creates a new security event repository
func NewSecurityEventRepository(db *gorm.DB) SecurityEventRepository {
	return &securityEventRepository{db: db}
}

// Create creates a new security event
func (r *securityEventRepository) Create(ctx context.Context, event *models.SecurityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListRecent lists the most recent security events
func (r *securityEventRepository) ListRecent(ctx context.Context, limit int) ([]*models.SecurityEvent, error) {
	var events []*models.SecurityEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// DeleteOlderThan removes security events older than cutoff
func (r *securityEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.SecurityEvent{})
	return result.RowsAffected, result.Error
}
