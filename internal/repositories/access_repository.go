package repositories

import (
	"context"

	"trading-admin-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminAccessRepository struct {
	db *gorm.DB
}

// NewAdminAccessRepository creates a new admin access repository instance
func NewAdminAccessRepository(db *gorm.DB) AdminAccessRepository {
	return &adminAccessRepository{db: db}
}

// AccessibleUserIDs returns the user IDs assigned to the given admin.
// Supplies the accessible-identifier set during scope resolution.
func (r *adminAccessRepository) AccessibleUserIDs(ctx context.Context, adminID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.AdminUserAccess{}).
		Where("admin_id = ?", adminID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *adminAccessRepository) Grant(ctx context.Context, adminID, userID uuid.UUID) error {
	assignment := &models.AdminUserAccess{
		ID:      uuid.New(),
		AdminID: adminID,
		UserID:  userID,
	}
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *adminAccessRepository) Revoke(ctx context.Context, adminID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("admin_id = ? AND user_id = ?", adminID, userID).
		Delete(&models.AdminUserAccess{}).Error
}
