package repositories

import (
	"context"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new dashboard stats repository instance
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// DashboardStats computes the landing-page aggregates under the given
// scope. An empty restricted scope returns zeroed counters without issuing
// any query. The four sub-queries run sequentially on one connection; the
// result is consistent only at read time, not a snapshot.
func (r *statsRepository) DashboardStats(ctx context.Context, sc scope.AccessScope) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	if sc.Empty() {
		return stats, nil
	}

	db := r.db.WithContext(ctx)

	userQuery := scopeByUserID(db.Model(&models.User{}), sc, "id")
	if err := userQuery.Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	tradeQuery := scopeByUserID(db.Model(&models.Trade{}), sc, "user_id").
		Where("status = ?", models.TradeStatusActive)
	if err := tradeQuery.Count(&stats.ActiveTrades).Error; err != nil {
		return nil, err
	}

	balanceQuery := scopeByUserID(db.Model(&models.UserBalance{}), sc, "user_id")
	err := balanceQuery.
		Select("COALESCE(SUM(available + frozen + on_hold), 0)").
		Row().Scan(&stats.TotalBalance)
	if err != nil {
		return nil, err
	}

	withdrawQuery := scopeByUserID(db.Model(&models.WithdrawRequest{}), sc, "user_id").
		Where("status = ?", models.WithdrawStatusPending)
	if err := withdrawQuery.Count(&stats.PendingWithdrawals).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
