package repositories

import (
	"context"
	"time"

	"gensuite-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ipRecordRepository implements IPRecordRepository interface
type ipRecordRepository struct {
	db *gorm.DB
}

// NewIPRecordRepository creates a new IP record repository
func NewIPRecordRepository(db *gorm.DB) IPRecordRepository {
	return &ipRecordRepository{db: db}
}

// Create creates a new IP record
func (r *ipRecordRepository) Create(ctx context.Context, record *models.IPRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByAccount lists the most recent IP records for an account
func (r *ipRecordRepository) ListByAccount(ctx context.Context, accountID uint, limit int) ([]*models.IPRecord, error) {
	var records []*models.IPRecord
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// DeleteOlderThan removes IP records older than cutoff
func (r *ipRecordRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.IPRecord{})
	return result.RowsAffected, result.Error
}
