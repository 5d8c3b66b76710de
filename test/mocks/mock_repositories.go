package mocks

import (
	"context"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.User, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, id uuid.UUID, ip, userAgent string) error {
	args := m.Called(ctx, id, ip, userAgent)
	return args.Error(0)
}

// MockTradeRepository is a mock implementation of TradeRepository
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trade), args.Error(1)
}

func (m *MockTradeRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.Trade, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trade), args.Error(1)
}

// MockRechargeCodeRepository is a mock implementation of RechargeCodeRepository
type MockRechargeCodeRepository struct {
	mock.Mock
}

func (m *MockRechargeCodeRepository) GetByCode(ctx context.Context, code string) (*models.RechargeCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RechargeCode), args.Error(1)
}

func (m *MockRechargeCodeRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.RechargeCode, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RechargeCode), args.Error(1)
}

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserBalance), args.Error(1)
}

func (m *MockBalanceRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.UserBalance, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserBalance), args.Error(1)
}

// MockWithdrawRepository is a mock implementation of WithdrawRepository
type MockWithdrawRepository struct {
	mock.Mock
}

func (m *MockWithdrawRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WithdrawRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WithdrawRequest), args.Error(1)
}

func (m *MockWithdrawRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.WithdrawRequest, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WithdrawRequest), args.Error(1)
}

// MockStatsRepository is a mock implementation of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) DashboardStats(ctx context.Context, sc scope.AccessScope) (*models.DashboardStats, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

// MockAdminAccessRepository is a mock implementation of AdminAccessRepository
type MockAdminAccessRepository struct {
	mock.Mock
}

func (m *MockAdminAccessRepository) AccessibleUserIDs(ctx context.Context, adminID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAdminAccessRepository) Grant(ctx context.Context, adminID, userID uuid.UUID) error {
	args := m.Called(ctx, adminID, userID)
	return args.Error(0)
}

func (m *MockAdminAccessRepository) Revoke(ctx context.Context, adminID, userID uuid.UUID) error {
	args := m.Called(ctx, adminID, userID)
	return args.Error(0)
}
