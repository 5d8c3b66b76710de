package repositories

import (
	"context"
	"errors"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"gorm.io/gorm"
)

type rechargeCodeRepository struct {
	db *gorm.DB
}

// NewRechargeCodeRepository creates a new recharge code repository instance
func NewRechargeCodeRepository(db *gorm.DB) RechargeCodeRepository {
	return &rechargeCodeRepository{db: db}
}

func (r *rechargeCodeRepository) GetByCode(ctx context.Context, code string) (*models.RechargeCode, error) {
	var rc models.RechargeCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&rc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}

// ListVisible returns recharge codes the admin either issued themselves or
// that belong to users inside their access window, newest first. The two
// conditions are combined with a parameterized disjunction; identifier
// values never reach the SQL text.
func (r *rechargeCodeRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.RechargeCode, error) {
	if sc.Empty() {
		return []*models.RechargeCode{}, nil
	}

	var codes []*models.RechargeCode
	query := r.db.WithContext(ctx).Model(&models.RechargeCode{})

	if !sc.FullAccess {
		cond := r.db.Where("user_id IN ?", sc.AccessibleIDs)
		if sc.ActorKnown() {
			cond = cond.Or("created_by = ?", *sc.ActorID)
		}
		query = query.Where(cond)
	}

	if err := query.Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
