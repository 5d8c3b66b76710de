package repositories

import "errors"

// Common repository errors
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidUser  = errors.New("invalid user data")

	// Trade errors
	ErrTradeNotFound = errors.New("trade not found")
	ErrInvalidTrade  = errors.New("invalid trade data")

	// Recharge code errors
	ErrRechargeCodeNotFound = errors.New("recharge code not found")
	ErrInvalidRechargeCode  = errors.New("invalid recharge code data")

	// Withdraw request errors
	ErrWithdrawRequestNotFound = errors.New("withdraw request not found")

	// Scope errors
	ErrScopeNotResolved = errors.New("access scope not resolved")
	ErrActorUnknown     = errors.New("acting admin identity unknown")

	// General errors
	ErrDatabaseConnection = errors.New("database connection error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternalError      = errors.New("internal server error")
)
