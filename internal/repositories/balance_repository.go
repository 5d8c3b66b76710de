package repositories

import (
	"context"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type balanceRepository struct {
	db *gorm.DB
}

// NewBalanceRepository creates a new balance repository instance
func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserBalance, error) {
	var balances []*models.UserBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&balances).Error
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// ListVisible returns the balances of users inside the admin's access
// window, most recently updated first.
func (r *balanceRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.UserBalance, error) {
	if sc.Empty() {
		return []*models.UserBalance{}, nil
	}

	var balances []*models.UserBalance
	query := r.db.WithContext(ctx).Model(&models.UserBalance{})
	query = scopeByUserID(query, sc, "user_id")

	if err := query.Order("updated_at DESC").Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}
