package api

import (
	"context"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"
	"trading-admin-backend/internal/tracking"

	"github.com/google/uuid"
)

// AdminQueryServiceInterface defines the interface for scoped dashboard queries
type AdminQueryServiceInterface interface {
	DashboardStats(ctx context.Context, sc scope.AccessScope) (*models.DashboardStats, error)
	ListUsers(ctx context.Context, sc scope.AccessScope) ([]*models.User, error)
	ListTrades(ctx context.Context, sc scope.AccessScope) ([]*models.Trade, error)
	ListRechargeCodes(ctx context.Context, sc scope.AccessScope) ([]*models.RechargeCode, error)
	ListBalances(ctx context.Context, sc scope.AccessScope) ([]*models.UserBalance, error)
	ListWithdrawRequests(ctx context.Context, sc scope.AccessScope) ([]*models.WithdrawRequest, error)
	PrefetchAll(ctx context.Context, sc scope.AccessScope)
}

// VisitorServiceInterface defines the interface for visitor tracking operations
type VisitorServiceInterface interface {
	Status() tracking.Status
	RecordSignIn(ctx context.Context, actorID *uuid.UUID, visit tracking.Visit) tracking.Status
}
