package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a platform user visible in the admin dashboard
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username      string         `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Email         string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone         *string        `gorm:"type:varchar(30)" json:"phone,omitempty"`
	CreditScore   int            `gorm:"default:100" json:"credit_score"`
	WalletAddress *string        `gorm:"type:varchar(128)" json:"wallet_address,omitempty"`
	LastLoginIP   *string        `gorm:"type:varchar(45)" json:"last_login_ip,omitempty"`
	LastUserAgent *string        `gorm:"type:text" json:"last_user_agent,omitempty"`
	Info          datatypes.JSON `gorm:"type:jsonb" json:"info"`

	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Trades           []Trade           `json:"-"`
	Balances         []UserBalance     `json:"-"`
	WithdrawRequests []WithdrawRequest `json:"-"`
}

// Trade constants
const (
	// Directions
	TradeDirectionLong  = "long"
	TradeDirectionShort = "short"

	// Statuses
	TradeStatusActive = "active"
	TradeStatusClosed = "closed"

	// Results
	TradeResultPending = "pending"
	TradeResultWin     = "win"
	TradeResultLoss    = "loss"
)

// Trade represents a leveraged position opened by a user
type Trade struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Pair       string     `gorm:"type:varchar(20);not null;index" json:"pair"`
	Direction  string     `gorm:"type:varchar(10);not null;check:direction IN ('long', 'short')" json:"direction"`
	Stake      float64    `gorm:"type:decimal(20,8);not null" json:"stake"`
	Leverage   int        `gorm:"not null;default:1" json:"leverage"`
	EntryPrice float64    `gorm:"type:decimal(20,8);not null" json:"entry_price"`
	ExitPrice  *float64   `gorm:"type:decimal(20,8)" json:"exit_price,omitempty"`
	Status     string     `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Result     string     `gorm:"type:varchar(20);default:'pending'" json:"result"`
	Profit     *float64   `gorm:"type:decimal(20,8)" json:"profit,omitempty"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_trades_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Validate validates the trade
func (t *Trade) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID cannot be nil")
	}

	if t.Pair == "" {
		return errors.New("pair is required")
	}

	if t.Direction != TradeDirectionLong && t.Direction != TradeDirectionShort {
		return errors.New("invalid direction")
	}

	if t.Stake <= 0 {
		return errors.New("stake must be positive")
	}

	if t.Leverage < 1 {
		return errors.New("leverage must be at least 1")
	}

	return nil
}

// IsActive returns true if the trade is still open
func (t *Trade) IsActive() bool {
	return t.Status == TradeStatusActive
}

// RechargeCode constants
const (
	RechargeCodeStatusUnused   = "unused"
	RechargeCodeStatusUsed     = "used"
	RechargeCodeStatusDisabled = "disabled"
)

// RechargeCode represents a prepaid top-up code issued by an admin
type RechargeCode struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code      string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	Amount    float64    `gorm:"type:decimal(20,8);not null" json:"amount"`
	Status    string     `gorm:"type:varchar(20);default:'unused';index" json:"status"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsRedeemed returns true if the code has been consumed by a user
func (rc *RechargeCode) IsRedeemed() bool {
	return rc.Status == RechargeCodeStatusUsed && rc.UserID != nil
}

// UserBalance represents a per-user, per-currency balance snapshot
type UserBalance struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Currency  string    `gorm:"type:varchar(10);not null;default:'USDT'" json:"currency"`
	Available float64   `gorm:"type:decimal(20,8);default:0" json:"available"`
	Frozen    float64   `gorm:"type:decimal(20,8);default:0" json:"frozen"`
	OnHold    float64   `gorm:"type:decimal(20,8);default:0" json:"on_hold"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Total returns the full balance including frozen and held funds
func (b *UserBalance) Total() float64 {
	return b.Available + b.Frozen + b.OnHold
}

// WithdrawRequest constants
const (
	WithdrawStatusPending   = "pending"
	WithdrawStatusApproved  = "approved"
	WithdrawStatusRejected  = "rejected"
	WithdrawStatusCompleted = "completed"
)

// WithdrawRequest represents a user request to withdraw funds
type WithdrawRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      float64    `gorm:"type:decimal(20,8);not null" json:"amount"`
	Address     string     `gorm:"type:varchar(128);not null" json:"address"`
	Status      string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ProcessedBy *uuid.UUID `gorm:"type:uuid" json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Remark      *string    `gorm:"type:text" json:"remark,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// IsPending returns true if the request still awaits processing
func (w *WithdrawRequest) IsPending() bool {
	return w.Status == WithdrawStatusPending
}

// AdminUserAccess maps an admin to a user they are allowed to view.
// Super admins bypass this table entirely.
type AdminUserAccess struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AdminID uuid.UUID `gorm:"type:uuid;not null;index:idx_admin_user_access_admin" json:"admin_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName returns the table name for AdminUserAccess
func (AdminUserAccess) TableName() string {
	return "admin_user_access"
}

// DashboardStats holds the aggregate counters shown on the admin landing page.
// All values are computed under the requesting admin's access scope.
type DashboardStats struct {
	TotalUsers         int64   `json:"total_users"`
	ActiveTrades       int64   `json:"active_trades"`
	TotalBalance       float64 `json:"total_balance"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
}
