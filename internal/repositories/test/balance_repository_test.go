package test

import (
	"context"
	"testing"
	"time"

	"trading-admin-backend/internal/repositories"
	"trading-admin-backend/internal/scope"
	"trading-admin-backend/test/fixtures"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceRepository_ListVisible_RestrictedScope(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBalanceRepository(db)
	ctx := context.Background()

	createBalance(t, db, fixtures.UserAliceID, 100, 10, 5, fixtures.FixedTime)
	createBalance(t, db, fixtures.UserBobID, 200, 0, 0, fixtures.FixedTime.Add(time.Hour))

	sc := scope.RestrictedScope(fixtures.AdminID, []uuid.UUID{fixtures.UserAliceID})
	balances, err := repo.ListVisible(ctx, sc)

	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, fixtures.UserAliceID, balances[0].UserID)
	assert.Equal(t, 115.0, balances[0].Total())
}

func TestBalanceRepository_ListVisible_RecentlyUpdatedFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBalanceRepository(db)
	ctx := context.Background()

	createBalance(t, db, fixtures.UserAliceID, 100, 0, 0, fixtures.FixedTime)
	createBalance(t, db, fixtures.UserBobID, 200, 0, 0, fixtures.FixedTime.Add(time.Hour))

	balances, err := repo.ListVisible(ctx, scope.FullAccessScope(fixtures.SuperAdminID))

	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, fixtures.UserBobID, balances[0].UserID)
	assert.Equal(t, fixtures.UserAliceID, balances[1].UserID)
}

func TestBalanceRepository_ListVisible_EmptyScopeSkipsDatabase(t *testing.T) {
	repo := repositories.NewBalanceRepository(nil)

	balances, err := repo.ListVisible(context.Background(), scope.RestrictedScope(fixtures.AdminID, nil))

	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestBalanceRepository_GetByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBalanceRepository(db)
	ctx := context.Background()

	createBalance(t, db, fixtures.UserAliceID, 100, 10, 5, fixtures.FixedTime)

	balances, err := repo.GetByUserID(ctx, fixtures.UserAliceID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "USDT", balances[0].Currency)
}
