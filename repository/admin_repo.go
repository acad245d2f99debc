package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"food-marketplace-api/models"
)

type AdminRepo struct{ db *gorm.DB }

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) Create(ctx context.Context, a *models.Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *AdminRepo) ByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}
