package repositories

import (
	"context"
	"errors"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxTradeRows caps the trade listing regardless of how many rows the
// backend holds; the dashboard only renders the most recent positions.
const maxTradeRows = 100

type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new trade repository instance
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trade, nil
}

// ListVisible returns up to maxTradeRows trades inside the admin's access
// window, newest first.
func (r *tradeRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.Trade, error) {
	if sc.Empty() {
		return []*models.Trade{}, nil
	}

	var trades []*models.Trade
	query := r.db.WithContext(ctx).Model(&models.Trade{})
	query = scopeByUserID(query, sc, "user_id")

	err := query.
		Order("created_at DESC").
		Limit(maxTradeRows).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}
