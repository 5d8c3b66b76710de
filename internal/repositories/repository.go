package repositories

import (
	"trading-admin-backend/internal/scope"

	"gorm.io/gorm"
)

// Repositories contains all repository instances
type Repositories struct {
	User         UserRepository
	Trade        TradeRepository
	RechargeCode RechargeCodeRepository
	Balance      BalanceRepository
	Withdraw     WithdrawRepository
	Stats        StatsRepository
	AdminAccess  AdminAccessRepository
}

// NewRepositories creates a new repository container with all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Trade:        NewTradeRepository(db),
		RechargeCode: NewRechargeCodeRepository(db),
		Balance:      NewBalanceRepository(db),
		Withdraw:     NewWithdrawRepository(db),
		Stats:        NewStatsRepository(db),
		AdminAccess:  NewAdminAccessRepository(db),
	}
}

// scopeByUserID narrows a query to the accessible-user window. Full access
// leaves the query unrestricted. Callers must handle the empty-scope
// short-circuit before reaching the database; this helper assumes a
// non-empty scope.
func scopeByUserID(query *gorm.DB, sc scope.AccessScope, column string) *gorm.DB {
	if sc.FullAccess {
		return query
	}
	return query.Where(column+" IN ?", sc.AccessibleIDs)
}
