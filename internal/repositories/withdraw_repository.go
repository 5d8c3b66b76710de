package repositories

import (
	"context"
	"errors"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type withdrawRepository struct {
	db *gorm.DB
}

// NewWithdrawRepository creates a new withdraw request repository instance
func NewWithdrawRepository(db *gorm.DB) WithdrawRepository {
	return &withdrawRepository{db: db}
}

func (r *withdrawRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WithdrawRequest, error) {
	var req models.WithdrawRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// ListVisible returns withdraw requests from users inside the admin's
// access window, newest first.
func (r *withdrawRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.WithdrawRequest, error) {
	if sc.Empty() {
		return []*models.WithdrawRequest{}, nil
	}

	var requests []*models.WithdrawRequest
	query := r.db.WithContext(ctx).Model(&models.WithdrawRequest{})
	query = scopeByUserID(query, sc, "user_id")

	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
