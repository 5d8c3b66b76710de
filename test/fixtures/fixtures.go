package fixtures

import (
	"time"

	"trading-admin-backend/internal/models"

	"github.com/google/uuid"
)

// FixedTime is a deterministic timestamp for fixtures.
var FixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Stable identities reused across tests.
var (
	SuperAdminID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	AdminID      = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	UserAliceID  = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	UserBobID    = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	UserCarolID  = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
)

// Users returns fresh copies of the standard user fixtures.
func Users() []*models.User {
	return []*models.User{
		{
			ID:          UserAliceID,
			Username:    "alice",
			Email:       "alice@example.com",
			CreditScore: 100,
			CreatedAt:   FixedTime,
			UpdatedAt:   FixedTime,
		},
		{
			ID:          UserBobID,
			Username:    "bob",
			Email:       "bob@example.com",
			CreditScore: 95,
			CreatedAt:   FixedTime.Add(time.Hour),
			UpdatedAt:   FixedTime.Add(time.Hour),
		},
		{
			ID:          UserCarolID,
			Username:    "carol",
			Email:       "carol@example.com",
			CreditScore: 80,
			CreatedAt:   FixedTime.Add(2 * time.Hour),
			UpdatedAt:   FixedTime.Add(2 * time.Hour),
		},
	}
}

// Trade returns a valid trade for the given user.
func Trade(userID uuid.UUID) *models.Trade {
	return &models.Trade{
		ID:         uuid.New(),
		UserID:     userID,
		Pair:       "BTC/USDT",
		Direction:  models.TradeDirectionLong,
		Stake:      250,
		Leverage:   10,
		EntryPrice: 64000,
		Status:     models.TradeStatusActive,
		Result:     models.TradeResultPending,
		CreatedAt:  FixedTime,
		UpdatedAt:  FixedTime,
	}
}

// Balance returns a balance row for the given user.
func Balance(userID uuid.UUID, available, frozen, onHold float64) *models.UserBalance {
	return &models.UserBalance{
		ID:        uuid.New(),
		UserID:    userID,
		Currency:  "USDT",
		Available: available,
		Frozen:    frozen,
		OnHold:    onHold,
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}
