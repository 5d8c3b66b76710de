package test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simplified SQLite mirrors of the production tables. Postgres-only column
// types and defaults (uuid, jsonb, gen_random_uuid) do not migrate to
// SQLite, so tests create TEXT-keyed equivalents under the same table
// names and let the repositories query them through the real models.

type testUser struct {
	ID            string `gorm:"primaryKey"`
	Username      string
	Email         string
	CreditScore   int
	LastLoginIP   *string
	LastUserAgent *string
	Info          string `gorm:"default:'{}'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

func (testUser) TableName() string { return "users" }

type testTrade struct {
	ID         string `gorm:"primaryKey"`
	UserID     string
	Pair       string
	Direction  string
	Stake      float64
	Leverage   int
	EntryPrice float64
	ExitPrice  *float64
	Status     string
	Result     string
	Profit     *float64
	ClosedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (testTrade) TableName() string { return "trades" }

type testRechargeCode struct {
	ID        string `gorm:"primaryKey"`
	Code      string
	Amount    float64
	Status    string
	CreatedBy string
	UserID    *string
	UsedAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (testRechargeCode) TableName() string { return "recharge_codes" }

type testBalance struct {
	ID        string `gorm:"primaryKey"`
	UserID    string
	Currency  string
	Available float64
	Frozen    float64
	OnHold    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (testBalance) TableName() string { return "user_balances" }

type testWithdrawRequest struct {
	ID          string `gorm:"primaryKey"`
	UserID      string
	Amount      float64
	Address     string
	Status      string
	ProcessedBy *string
	ProcessedAt *time.Time
	Remark      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (testWithdrawRequest) TableName() string { return "withdraw_requests" }

type testAdminUserAccess struct {
	ID        string `gorm:"primaryKey"`
	AdminID   string
	UserID    string
	CreatedAt time.Time
}

func (testAdminUserAccess) TableName() string { return "admin_user_access" }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&testUser{},
		&testTrade{},
		&testRechargeCode{},
		&testBalance{},
		&testWithdrawRequest{},
		&testAdminUserAccess{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, id uuid.UUID, username string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&testUser{
		ID:        id.String(),
		Username:  username,
		Email:     username + "@example.com",
		Info:      "{}",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}).Error)
}

func createTrade(t *testing.T, db *gorm.DB, userID uuid.UUID, status string, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&testTrade{
		ID:         id.String(),
		UserID:     userID.String(),
		Pair:       "BTC/USDT",
		Direction:  "long",
		Stake:      100,
		Leverage:   5,
		EntryPrice: 64000,
		Status:     status,
		Result:     "pending",
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}).Error)
	return id
}

func createRechargeCode(t *testing.T, db *gorm.DB, code string, createdBy uuid.UUID, userID *uuid.UUID, createdAt time.Time) {
	t.Helper()
	var uid *string
	if userID != nil {
		s := userID.String()
		uid = &s
	}
	require.NoError(t, db.Create(&testRechargeCode{
		ID:        uuid.New().String(),
		Code:      code,
		Amount:    50,
		Status:    "unused",
		CreatedBy: createdBy.String(),
		UserID:    uid,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}).Error)
}

func createBalance(t *testing.T, db *gorm.DB, userID uuid.UUID, available, frozen, onHold float64, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&testBalance{
		ID:        uuid.New().String(),
		UserID:    userID.String(),
		Currency:  "USDT",
		Available: available,
		Frozen:    frozen,
		OnHold:    onHold,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}).Error)
}

func createWithdrawRequest(t *testing.T, db *gorm.DB, userID uuid.UUID, status string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&testWithdrawRequest{
		ID:        uuid.New().String(),
		UserID:    userID.String(),
		Amount:    200,
		Address:   "0xabc",
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}).Error)
}

func grantAccess(t *testing.T, db *gorm.DB, adminID, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&testAdminUserAccess{
		ID:        uuid.New().String(),
		AdminID:   adminID.String(),
		UserID:    userID.String(),
		CreatedAt: time.Now(),
	}).Error)
}
