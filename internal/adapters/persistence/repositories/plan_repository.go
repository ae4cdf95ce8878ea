package repositories

import (
	"context"

	"gensuite-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// planRepository implements PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// ListActive lists active plans in display order
func (r *planRepository) ListActive(ctx context.Context) ([]*models.Plan, error) {
	var plans []*models.Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order, price_cents").
		Find(&plans).Error
	return plans, err
}

// GetByCode gets a plan by code
func (r *planRepository) GetByCode(ctx context.Context, code string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create creates a new plan
func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// Count counts all plans
func (r *planRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Plan{}).Count(&count).Error
	return count, err
}
