package repositories

import (
	"context"
	"errors"

	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListVisible returns the users inside the admin's access window, newest
// first. An empty restricted scope returns no rows without querying.
func (r *userRepository) ListVisible(ctx context.Context, sc scope.AccessScope) ([]*models.User, error) {
	if sc.Empty() {
		return []*models.User{}, nil
	}

	var users []*models.User
	query := r.db.WithContext(ctx).Model(&models.User{})
	query = scopeByUserID(query, sc, "id")

	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) RecordLogin(ctx context.Context, id uuid.UUID, ip, userAgent string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_ip":   ip,
			"last_user_agent": userAgent,
		}).Error
}
