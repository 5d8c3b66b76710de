package repositories

import (
	"context"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
)

// UserRepository defines the interface for scoped user reads
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.User, error)
	RecordLogin(ctx context.Context, id uuid.UUID, ip, userAgent string) error
}

// TradeRepository defines the interface for scoped trade reads
type TradeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error)
	ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.Trade, error)
}

// RechargeCodeRepository defines the interface for scoped recharge code reads
type RechargeCodeRepository interface {
	GetByCode(ctx context.Context, code string) (*models.RechargeCode, error)
	ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.RechargeCode, error)
}

// BalanceRepository defines the interface for scoped balance reads
type BalanceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserBalance, error)
	ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.UserBalance, error)
}

// WithdrawRepository defines the interface for scoped withdraw request reads
type WithdrawRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.WithdrawRequest, error)
	ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.WithdrawRequest, error)
}

// StatsRepository defines the interface for scoped dashboard aggregates
type StatsRepository interface {
	DashboardStats(ctx context.Context, sc scope.AccessScope) (*models.DashboardStats, error)
}

// AdminAccessRepository resolves which user IDs an admin is assigned to.
// This backs scope resolution; queries themselves never consult it.
type AdminAccessRepository interface {
	AccessibleUserIDs(ctx context.Context, adminID uuid.UUID) ([]uuid.UUID, error)
	Grant(ctx context.Context, adminID, userID uuid.UUID) error
	Revoke(ctx context.Context, adminID, userID uuid.UUID) error
}
